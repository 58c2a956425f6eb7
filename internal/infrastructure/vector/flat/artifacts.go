package flat

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okorolev/manual-assistant/internal/core/domain"
)

// Index file layout: little-endian uint32 row count, uint32 dimension, then
// count*dim float32 values row by row.
func readIndexFile(path string) (int, [][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var header struct {
		Count uint32
		Dim   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return 0, nil, fmt.Errorf("read index header: %w", err)
	}
	if header.Count == 0 || header.Dim == 0 {
		return 0, nil, fmt.Errorf("index header reports %d rows of dimension %d", header.Count, header.Dim)
	}

	values := make([]float32, int(header.Count)*int(header.Dim))
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return 0, nil, fmt.Errorf("read index vectors: %w", err)
	}

	vectors := make([][]float32, header.Count)
	for row := range vectors {
		start := row * int(header.Dim)
		vectors[row] = values[start : start+int(header.Dim)]
	}
	return int(header.Dim), vectors, nil
}

// Metadata: JSON array of {file_name, chunk_id} aligned 1:1 to index rows.
func readMetadata(path string) ([]domain.ChunkRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata file: %w", err)
	}
	var refs []domain.ChunkRef
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("parse metadata file: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("metadata file is empty")
	}
	return refs, nil
}

type chunkTextRecord struct {
	FileName string `json:"file_name"`
	ChunkID  int    `json:"chunk_id"`
	Text     string `json:"text"`
}

// readChunkTexts builds the chunk-text lookup from whichever text sources
// exist. Per-embedding records take precedence; generic chunk records only
// fill identities the former misses. Unreadable files are skipped.
func readChunkTexts(embeddingsPath, chunksPath string) map[domain.ChunkRef]string {
	lookup := make(map[domain.ChunkRef]string)

	for _, rec := range readTextRecords(embeddingsPath) {
		lookup[domain.ChunkRef{FileName: rec.FileName, ChunkID: rec.ChunkID}] = rec.Text
	}
	for _, rec := range readTextRecords(chunksPath) {
		ref := domain.ChunkRef{FileName: rec.FileName, ChunkID: rec.ChunkID}
		if existing, ok := lookup[ref]; !ok || existing == "" {
			lookup[ref] = rec.Text
		}
	}
	return lookup
}

func readTextRecords(path string) []chunkTextRecord {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var records []chunkTextRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}
