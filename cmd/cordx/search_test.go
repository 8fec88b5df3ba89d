package main

import (
	"errors"
	"testing"
)

type fakeCounter struct {
	n   int
	err error
}

func (f fakeCounter) Count() (int, error) { return f.n, f.err }

func TestCheckCache(t *testing.T) {
	corrupt := errors.New("file is not a database")

	tests := []struct {
		name    string
		db      fakeCounter
		wantErr error
	}{
		{"populated", fakeCounter{n: 3}, nil},
		{"empty", fakeCounter{}, errCacheEmpty},
		{"count fails", fakeCounter{err: corrupt}, corrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCache(tt.db)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkCache() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkCache() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
