package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/carlot"
	main "github.com/fwojciec/carlot/cmd/carlot"
	"github.com/fwojciec/carlot/csv"
	"github.com/fwojciec/carlot/json"
	"github.com/fwojciec/carlot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codecs() map[carlot.Format]carlot.Codec {
	return map[carlot.Format]carlot.Codec{
		carlot.FormatJSON: json.NewCodec(),
		carlot.FormatCSV:  csv.NewCodec(),
	}
}

func storedVehicles(_ context.Context, _ carlot.VehicleFilter) ([]*carlot.Vehicle, error) {
	return []*carlot.Vehicle{
		{ID: "v1", Title: "2021 Toyota Camry SE", Price: intPtr(24500), Source: carlot.SourceAutoTrader},
	}, nil
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON to stdout by default", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.VehicleService{FindVehiclesFn: storedVehicles})
		deps.Codecs = codecs()

		require.NoError(t, (&main.ExportCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), `"title": "2021 Toyota Camry SE"`)
	})

	t.Run("guesses CSV from the output file name", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.VehicleService{FindVehiclesFn: storedVehicles})
		deps.Codecs = codecs()
		path := filepath.Join(t.TempDir(), "vehicles.csv")

		require.NoError(t, (&main.ExportCmd{Output: path}).Run(deps))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"ID","Title","Price"`)
		assert.Contains(t, stdout.String(), "Exported 1 vehicles")
	})

	t.Run("explicit format wins over the file name", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(&mock.VehicleService{FindVehiclesFn: storedVehicles})
		deps.Codecs = codecs()
		path := filepath.Join(t.TempDir(), "vehicles.csv")

		require.NoError(t, (&main.ExportCmd{Output: path, Format: "json"}).Run(deps))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"id": "v1"`)
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		var got carlot.VehicleFilter
		vehicles := &mock.VehicleService{
			FindVehiclesFn: func(ctx context.Context, filter carlot.VehicleFilter) ([]*carlot.Vehicle, error) {
				got = filter
				return nil, nil
			},
		}
		deps, _, _ := newDeps(vehicles)
		deps.Codecs = codecs()

		require.NoError(t, (&main.ExportCmd{Source: "Craigslist"}).Run(deps))

		require.NotNil(t, got.Source)
		assert.Equal(t, "Craigslist", *got.Source)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.VehicleService{FindVehiclesFn: storedVehicles})
		deps.Codecs = codecs()

		err := (&main.ExportCmd{Format: "xml"}).Run(deps)

		assert.Equal(t, carlot.EINVALID, carlot.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unsupported format")
	})

	t.Run("leaves no file behind when storage fails", func(t *testing.T) {
		t.Parallel()

		vehicles := &mock.VehicleService{
			FindVehiclesFn: func(_ context.Context, _ carlot.VehicleFilter) ([]*carlot.Vehicle, error) {
				return nil, carlot.Errorf(carlot.EINTERNAL, "database is locked")
			},
		}
		deps, _, _ := newDeps(vehicles)
		deps.Codecs = codecs()
		dir := t.TempDir()
		path := filepath.Join(dir, "vehicles.json")

		err := (&main.ExportCmd{Output: path}).Run(deps)

		require.Error(t, err)
		assert.NoFileExists(t, path)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "temporary file is removed")
	})
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	newNormalizer := func() *carlot.Normalizer {
		return &carlot.Normalizer{
			Now:   func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) },
			NewID: func() string { return "generated" },
		}
	}

	t.Run("saves every decoded vehicle", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "vehicles.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"id": "v1", "title": "2021 Toyota Camry SE", "price": 24500},
			{"title": "2019 Honda Civic LX"}
		]`), 0644))

		var saved []*carlot.Vehicle
		vehicles := &mock.VehicleService{
			SaveVehicleFn: func(_ context.Context, v *carlot.Vehicle) (*carlot.Vehicle, error) {
				saved = append(saved, v)
				return v, nil
			},
		}
		deps, stdout, _ := newDeps(vehicles)
		deps.Codecs = codecs()
		deps.Normalizer = newNormalizer()

		require.NoError(t, (&main.ImportCmd{File: path}).Run(deps))

		require.Len(t, saved, 2)
		assert.Equal(t, "v1", saved[0].ID)
		assert.Equal(t, "generated", saved[1].ID)
		assert.Equal(t, "Honda", saved[1].Make)
		assert.Contains(t, stdout.String(), "Imported 2 vehicles")
	})

	t.Run("aborts on malformed input", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "vehicles.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id": "v1"}`), 0644))

		vehicles := &mock.VehicleService{
			SaveVehicleFn: func(_ context.Context, v *carlot.Vehicle) (*carlot.Vehicle, error) {
				t.Fatal("SaveVehicle should not be called")
				return nil, nil
			},
		}
		deps, _, stderr := newDeps(vehicles)
		deps.Codecs = codecs()
		deps.Normalizer = newNormalizer()

		err := (&main.ImportCmd{File: path}).Run(deps)

		assert.Equal(t, carlot.EINVALID, carlot.ErrorCode(err))
		assert.Contains(t, stderr.String(), "expected a JSON array")
	})

	t.Run("reports a missing file", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.VehicleService{})
		deps.Codecs = codecs()
		deps.Normalizer = newNormalizer()

		err := (&main.ImportCmd{File: filepath.Join(t.TempDir(), "missing.csv")}).Run(deps)

		assert.Equal(t, carlot.ENOTFOUND, carlot.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
