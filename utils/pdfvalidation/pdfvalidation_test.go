package pdfvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePDFBytesRejectsOversizedFile(t *testing.T) {
	// One byte over the application document limit; the size check runs
	// before any parsing
	content := make([]byte, int64(ApplicationDocumentLimits.MaxFileSizeMB)*1024*1024+1)

	result, err := ValidatePDFBytes(content, ApplicationDocumentLimits)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "exceeds maximum allowed size")
}

func TestValidatePDFBytesRejectsMissingHeader(t *testing.T) {
	result, err := ValidatePDFBytes([]byte("this is not a pdf"), BrochureLimits)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "missing PDF header")
}

func TestBrochureAndApplicationLimitsDiffer(t *testing.T) {
	assert.Equal(t, 25, BrochureLimits.MaxFileSizeMB)
	assert.Equal(t, 100, BrochureLimits.MaxPages)
	assert.Equal(t, 10, ApplicationDocumentLimits.MaxFileSizeMB)
	assert.Equal(t, 20, ApplicationDocumentLimits.MaxPages)
}
