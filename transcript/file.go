package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
)

// FileSink keeps one JSON document per session in a directory.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) path(sessionID string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, sessionID)
	return filepath.Join(s.dir, name+".json")
}

func (s *FileSink) Save(ctx context.Context, sessionID string, messages []*schema.Message) error {
	data, err := sonic.Marshal(normalize(messages))
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	target := s.path(sessionID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace transcript: %w", err)
	}
	return nil
}

func (s *FileSink) Load(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var messages []*schema.Message
	if err := sonic.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return messages, nil
}

func (s *FileSink) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileSink) Close() error {
	return nil
}
