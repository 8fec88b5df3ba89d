package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/cordx/internal/paper"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines.
// CORD-19 abstracts can run to tens of kilobytes.
const MaxJSONLLineCapacity = 4 * 1024 * 1024

// ReadJSONL reads papers from a JSONL file.
// Derived columns are recomputed rather than trusted. A missing file is an
// error matching fs.ErrNotExist.
func ReadJSONL(path string) ([]paper.Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening papers file: %w", err)
	}
	defer f.Close()

	var papers []paper.Paper
	scanner := bufio.NewScanner(f)

	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var p paper.Paper
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		papers = append(papers, paper.New(p))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading papers file: %w", err)
	}

	return papers, nil
}

// WriteJSONL writes papers to w, one JSON object per line.
func WriteJSONL(w io.Writer, papers []paper.Paper) error {
	bw := bufio.NewWriter(w)
	for i, p := range papers {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding paper %d: %w", i, err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("writing paper %d: %w", i, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return bw.Flush()
}

// WriteJSONLFile writes papers to path, replacing existing content.
func WriteJSONLFile(path string, papers []paper.Paper) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating papers file: %w", err)
	}
	if err := WriteJSONL(f, papers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
