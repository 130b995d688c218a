package storage

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/matst80/slask-view/pkg/common/jsoncompat"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/pkg/errors"
)

// DiskStorage resolves data files below a root folder, one folder per
// country.
type DiskStorage struct {
	Country    string
	RootFolder string
}

func NewDiskStorage(country, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Country:    country,
		RootFolder: rootFolder,
	}
}

// GetFileName returns the path of name and a temporary sibling used for
// atomic writes.
func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(ds.RootFolder, ds.Country, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

// Source picks a record source for name by its extension.
func (ds *DiskStorage) Source(name string) (types.RecordSource, error) {
	fileName, _ := ds.GetFileName(name)
	switch {
	case strings.HasSuffix(name, ".json"), strings.HasSuffix(name, ".json.gz"):
		return &JsonFile{Path: fileName}, nil
	case strings.HasSuffix(name, ".csv"):
		return &CsvFile{Path: fileName}, nil
	}
	return nil, errors.Errorf("unsupported data file %s", name)
}

// SaveJson writes data next to the target and renames it into place.
func (ds *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := ds.GetFileName(name)
	if err := os.MkdirAll(path.Dir(fileName), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", path.Dir(fileName))
	}
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal")
	}

	var w io.Writer
	file, err := os.Create(tmpFileName)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", tmpFileName)
	}
	w = file
	var zipWriter *gzip.Writer
	if strings.HasSuffix(name, ".gz") {
		zipWriter = gzip.NewWriter(file)
		w = zipWriter
	}
	_, err = w.Write(bytes)
	if zipWriter != nil {
		if closeErr := zipWriter.Close(); err == nil {
			err = closeErr
		}
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return errors.Wrapf(err, "failed to write to %s", tmpFileName)
	}
	return errors.Wrapf(os.Rename(tmpFileName, fileName), "failed to move %s into place", fileName)
}
