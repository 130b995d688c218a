package storage

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"

	"github.com/matst80/slask-view/pkg/common/jsoncompat"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/pkg/errors"
)

// JsonFile reads a JSON array of objects. Files ending in .gz are
// gunzipped first.
type JsonFile struct {
	Path string
}

func (f *JsonFile) FetchAll(ctx context.Context) ([]types.Record, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read from %s", f.Path)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(f.Path, ".gz") {
		zipReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open gzip stream %s", f.Path)
		}
		defer zipReader.Close()
		r = zipReader
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read from %s", f.Path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeRecords(data)
}

func DecodeRecords(data []byte) ([]types.Record, error) {
	records := make([]types.Record, 0)
	if err := jsoncompat.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal")
	}
	return records, nil
}
