package kpistruct

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
)

// SupportedExtension is the only workbook format the extractor reads.
const SupportedExtension = "xlsx"

// ParseKey splits a key of the form <ownerId>/<fileName>.xlsx.
//
// The extension is checked first: a key whose extension is not xlsx returns
// ok == false and a nil error, meaning the caller should skip it. A
// supported key without a non-empty owner segment fails with ErrMalformedKey.
func ParseKey(key string) (wk models.WorkbookKey, ok bool, err error) {
	if !strings.HasSuffix(strings.ToLower(key), "."+SupportedExtension) {
		return models.WorkbookKey{}, false, nil
	}

	parts := strings.Split(key, "/")
	if len(parts) < 2 || parts[0] == "" {
		return models.WorkbookKey{}, false, fmt.Errorf("%w: no owner folder in %q", ErrMalformedKey, key)
	}

	fileName := parts[len(parts)-1]
	baseName := fileName[:len(fileName)-len(SupportedExtension)-1]

	return models.WorkbookKey{
		Raw:       key,
		OwnerID:   parts[0],
		BaseName:  baseName,
		Extension: SupportedExtension,
	}, true, nil
}

// DecodeEventKey undoes the form encoding of object keys in storage event
// notifications ('+' for space, percent escapes).
func DecodeEventKey(key string) (string, error) {
	decoded, err := url.QueryUnescape(key)
	if err != nil {
		return "", fmt.Errorf("%w: cannot decode %q: %v", ErrMalformedKey, key, err)
	}
	return decoded, nil
}

// ProcessedKey is the location of the KPI record for wk.
func ProcessedKey(prefix string, wk models.WorkbookKey) string {
	return fmt.Sprintf("%s/%s/%s.json", prefix, wk.OwnerID, wk.BaseName)
}
