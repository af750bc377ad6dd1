package facturx

import (
	"fmt"
	"time"

	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Archival conformance identifiers stamped into the container catalog.
const (
	pdfaPart        = 3
	pdfaConformance = "B"

	facturxDocumentType     = "INVOICE"
	facturxDocumentFileName = AttachmentName
	facturxVersion          = "1.0"
	facturxConformanceLevel = "BASIC"
)

// xmpTemplate is the XMP packet written into the catalog metadata stream.
// It declares PDF/A-3 identification plus the Factur-X extension schema
// describing the embedded invoice payload.
const xmpTemplate = "<?xpacket begin=\"\uFEFF\" id=\"W5M0MpCehiHzreSzNTczkc9d\"?>" + `
<x:xmpmeta xmlns:x="adobe:ns:meta/">
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
    <rdf:Description rdf:about="" xmlns:pdfaid="http://www.aiim.org/pdfa/ns/id/">
      <pdfaid:part>%d</pdfaid:part>
      <pdfaid:conformance>%s</pdfaid:conformance>
    </rdf:Description>
    <rdf:Description rdf:about="" xmlns:xmp="http://ns.adobe.com/xap/1.0/">
      <xmp:CreateDate>%s</xmp:CreateDate>
      <xmp:ModifyDate>%s</xmp:ModifyDate>
    </rdf:Description>
    <rdf:Description rdf:about="" xmlns:pdfaExtension="http://www.aiim.org/pdfa/ns/extension/" xmlns:pdfaSchema="http://www.aiim.org/pdfa/ns/schema#" xmlns:pdfaProperty="http://www.aiim.org/pdfa/ns/property#">
      <pdfaExtension:schemas>
        <rdf:Bag>
          <rdf:li rdf:parseType="Resource">
            <pdfaSchema:schema>Factur-X PDFA Extension Schema</pdfaSchema:schema>
            <pdfaSchema:namespaceURI>urn:factur-x:pdfa:CrossIndustryDocument:invoice:1p0#</pdfaSchema:namespaceURI>
            <pdfaSchema:prefix>fx</pdfaSchema:prefix>
            <pdfaSchema:property>
              <rdf:Seq>
                <rdf:li rdf:parseType="Resource">
                  <pdfaProperty:name>DocumentFileName</pdfaProperty:name>
                  <pdfaProperty:valueType>Text</pdfaProperty:valueType>
                  <pdfaProperty:category>external</pdfaProperty:category>
                  <pdfaProperty:description>Name of the embedded XML invoice file</pdfaProperty:description>
                </rdf:li>
                <rdf:li rdf:parseType="Resource">
                  <pdfaProperty:name>DocumentType</pdfaProperty:name>
                  <pdfaProperty:valueType>Text</pdfaProperty:valueType>
                  <pdfaProperty:category>external</pdfaProperty:category>
                  <pdfaProperty:description>INVOICE</pdfaProperty:description>
                </rdf:li>
                <rdf:li rdf:parseType="Resource">
                  <pdfaProperty:name>Version</pdfaProperty:name>
                  <pdfaProperty:valueType>Text</pdfaProperty:valueType>
                  <pdfaProperty:category>external</pdfaProperty:category>
                  <pdfaProperty:description>The actual version of the standard applying to the embedded XML document</pdfaProperty:description>
                </rdf:li>
                <rdf:li rdf:parseType="Resource">
                  <pdfaProperty:name>ConformanceLevel</pdfaProperty:name>
                  <pdfaProperty:valueType>Text</pdfaProperty:valueType>
                  <pdfaProperty:category>external</pdfaProperty:category>
                  <pdfaProperty:description>The conformance level of the embedded XML document</pdfaProperty:description>
                </rdf:li>
              </rdf:Seq>
            </pdfaSchema:property>
          </rdf:li>
        </rdf:Bag>
      </pdfaExtension:schemas>
    </rdf:Description>
    <rdf:Description rdf:about="" xmlns:fx="urn:factur-x:pdfa:CrossIndustryDocument:invoice:1p0#">
      <fx:DocumentType>%s</fx:DocumentType>
      <fx:DocumentFileName>%s</fx:DocumentFileName>
      <fx:Version>%s</fx:Version>
      <fx:ConformanceLevel>%s</fx:ConformanceLevel>
    </rdf:Description>
  </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

// buildXMP renders the metadata packet for one embedding operation.
func buildXMP(now time.Time) []byte {
	ts := now.UTC().Format(time.RFC3339)
	return []byte(fmt.Sprintf(xmpTemplate,
		pdfaPart, pdfaConformance,
		ts, ts,
		facturxDocumentType, facturxDocumentFileName, facturxVersion, facturxConformanceLevel,
	))
}

// stampMetadata writes the XMP packet into the catalog metadata stream so
// the conformance markers are actually persisted in the output container,
// not just constructed in memory.
func stampMetadata(ctx *pdfmodel.Context, now time.Time) error {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return err
	}

	xmp := buildXMP(now)
	length := int64(len(xmp))

	// XMP metadata streams stay uncompressed so conformance checkers can
	// locate the packet by scanning the file. The writer takes the stream
	// length from StreamLength, not from the dict entry.
	sd := types.StreamDict{
		Dict: types.Dict{
			"Type":    types.Name("Metadata"),
			"Subtype": types.Name("XML"),
			"Length":  types.Integer(len(xmp)),
		},
		Content:      xmp,
		Raw:          xmp,
		StreamLength: &length,
	}

	ir, err := ctx.IndRefForNewObject(sd)
	if err != nil {
		return err
	}

	rootDict["Metadata"] = *ir
	return nil
}
