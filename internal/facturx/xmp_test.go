package facturx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildXMP(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	xmp := string(buildXMP(now))

	// The xpacket header opens with the U+FEFF byte order marker.
	assert.True(t, strings.HasPrefix(xmp, "<?xpacket begin=\"\uFEFF\""), "missing xpacket header")
	assert.True(t, strings.HasSuffix(xmp, `<?xpacket end="w"?>`))

	assert.Contains(t, xmp, "<pdfaid:part>3</pdfaid:part>")
	assert.Contains(t, xmp, "<pdfaid:conformance>B</pdfaid:conformance>")
	assert.Contains(t, xmp, "<xmp:CreateDate>2026-03-01T12:00:00Z</xmp:CreateDate>")
	assert.Contains(t, xmp, "<fx:DocumentFileName>"+AttachmentName+"</fx:DocumentFileName>")
	assert.Contains(t, xmp, "<fx:ConformanceLevel>BASIC</fx:ConformanceLevel>")
}
