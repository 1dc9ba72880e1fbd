package snapshot_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports/mocks"
	"github.com/Gunvolt24/wildink/internal/snapshot"
	"github.com/Gunvolt24/wildink/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func TestFile_LoadMissing(t *testing.T) {
	f := snapshot.NewFile(filepath.Join(t.TempDir(), "nope", "catalog.json"))
	items, err := f.Load(context.Background())
	if err != nil || items != nil {
		t.Fatalf("missing snapshot must be (nil, nil), got %v %v", items, err)
	}
}

func TestFile_WriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "catalog.json")
	f := snapshot.NewFile(path)

	in := []domain.Item{{ID: "1", Title: "Ink", Price: decimal.RequireFromString("9.5")}}
	if err := f.Write(in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(raw), "[\n  {") {
		t.Fatalf("snapshot must be an indented array, got %q", raw)
	}

	out, err := f.Load(context.Background())
	if err != nil || len(out) != 1 || !out[0].Price.Equal(in[0].Price) {
		t.Fatalf("Load: got %+v err=%v", out, err)
	}
}

func TestFile_WriteEmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := snapshot.NewFile(path).Write(nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("empty snapshot must be [], got %q", raw)
	}
}

func TestFile_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	_ = os.WriteFile(path, []byte("{"), 0o600)
	if _, err := snapshot.NewFile(path).Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestExporter_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRecordStore(ctrl)

	store.EXPECT().GetRecords(gomock.Any(), "catalog", nil).Return([]domain.Record{
		{ID: "rec1", Fields: json.RawMessage(`{"id":"1","title":"Ink","price":10}`)},
		{ID: "rec2", Fields: json.RawMessage(`{"id":"2","price":3}`)}, // без title — попадёт в снапшот с предупреждением
	}, nil)

	path := filepath.Join(t.TempDir(), "catalog.json")
	exp := snapshot.NewExporter(store, validate.NewItemValidator(), snapshot.NewFile(path), "catalog", noopLogger{})

	n, err := exp.Run(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("Run: n=%d err=%v", n, err)
	}
	items, _ := snapshot.NewFile(path).Load(context.Background())
	if len(items) != 2 || items[1].ID != "2" {
		t.Fatalf("unexpected snapshot contents %+v", items)
	}
}

func TestExporter_ProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRecordStore(ctrl)
	boom := errors.New("provider down")

	store.EXPECT().GetRecords(gomock.Any(), "catalog", nil).Return(nil, boom)

	path := filepath.Join(t.TempDir(), "catalog.json")
	exp := snapshot.NewExporter(store, validate.NewItemValidator(), snapshot.NewFile(path), "catalog", noopLogger{})

	if _, err := exp.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("snapshot must not be written on failure")
	}
}
