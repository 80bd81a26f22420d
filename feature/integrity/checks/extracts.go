package checks

import (
	"context"
	"fmt"
	"strings"

	"report-validator/core/storage"
	"report-validator/core/tableio"
)

// ExtractReport summarises the extracts found under a prefix.
type ExtractReport struct {
	Prefix     string   `json:"prefix"`
	Checked    int      `json:"checked"`
	Readable   []string `json:"readable"`
	Unreadable []string `json:"unreadable"`
	Oversized  []string `json:"oversized"`
}

// CheckExtracts lists the objects under prefix and flags those no reader can
// open or that exceed maxBytes. Folder markers are skipped.
func CheckExtracts(ctx context.Context, client storage.Client, bucket, prefix string, maxBytes int64) (*ExtractReport, error) {
	objects, err := storage.ListKeys(ctx, client, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list extracts: %w", err)
	}

	report := &ExtractReport{
		Prefix:     prefix,
		Readable:   []string{},
		Unreadable: []string{},
		Oversized:  []string{},
	}
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		report.Checked++

		if _, err := tableio.DetectFormat(obj.Key); err != nil {
			report.Unreadable = append(report.Unreadable, obj.Key)
			continue
		}
		if maxBytes > 0 && obj.Size > maxBytes {
			report.Oversized = append(report.Oversized, obj.Key)
			continue
		}
		report.Readable = append(report.Readable, obj.Key)
	}
	return report, nil
}
