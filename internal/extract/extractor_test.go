package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specsync/internal/core/domain"
)

const renderedDoc = `<html><body>
<table>
<tr><td>Index</td><td>LX012</td></tr>
<tr><td>Title</td><td>Widget lifecycle</td></tr>
<tr><td>Status</td><td>Drafting</td></tr>
<tr><td>Authors</td><td>Ana García, Bob Jones</td></tr>
<tr><td>Type</td><td>Standard</td></tr>
<tr><td>Created</td><td>3 March 2024</td></tr>
</table>
<h1>Widget lifecycle</h1>
<p>Body text of the document.</p>
</body></html>`

func TestExtract(t *testing.T) {
	result, err := New().Extract(renderedDoc)
	require.NoError(t, err)

	rec := result.Record
	assert.Equal(t, "LX012", rec.Index)
	assert.Equal(t, "Widget lifecycle", rec.Title)
	assert.Equal(t, domain.StatusDrafting, rec.Status)
	assert.Empty(t, rec.StatusMessage)
	assert.Equal(t, []string{"Ana García", "Bob Jones"}, rec.Authors)
	assert.Equal(t, domain.TypeStandard, rec.Type)
	assert.Equal(t, "2024-03-03", rec.Created.String())
}

func TestExtractRemovesTableFromHTML(t *testing.T) {
	result, err := New().Extract(renderedDoc)
	require.NoError(t, err)

	assert.NotContains(t, result.HTML, "<table")
	assert.Contains(t, result.HTML, "Body text of the document.")
	assert.Contains(t, result.HTML, "<h1>Widget lifecycle</h1>")
}

func TestExtractNoTable(t *testing.T) {
	_, err := New().Extract("<html><body><p>No metadata here.</p></body></html>")
	assert.ErrorIs(t, err, domain.ErrNoMetadataTable)
}

func TestExtractMentionChipAuthors(t *testing.T) {
	// People inserted as mention chips render as adjacent links with
	// punctuation-only text between them.
	doc := `<html><body><table>
<tr><td>Authors</td><td><a href="mailto:ana@example.com">Ana García</a><span>, </span><a href="mailto:bob@example.com">Bob Jones</a></td></tr>
</table></body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana García", "Bob Jones"}, result.Record.Authors)
}

func TestExtractUnknownValuesDegrade(t *testing.T) {
	doc := `<html><body><table>
<tr><td>Status</td><td>WIP</td></tr>
<tr><td>Type</td><td>whitepaper</td></tr>
<tr><td>Created</td><td>sometime soon</td></tr>
</table></body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)

	rec := result.Record
	assert.Equal(t, domain.StatusUnknown, rec.Status)
	assert.Equal(t, "WIP", rec.StatusMessage)
	assert.Equal(t, domain.TypeUnknown, rec.Type)
	assert.Equal(t, "unknown", rec.Created.String())
}

func TestExtractSkipsNonMetadataRows(t *testing.T) {
	doc := `<html><body><table>
<tr><td colspan="2">Metadata</td></tr>
<tr><td>Index</td><td>LX001</td></tr>
<tr><td>a</td><td>b</td><td>c</td></tr>
<tr><td>Release date</td><td>2024-06-01</td></tr>
</table></body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)

	rec := result.Record
	assert.Equal(t, "LX001", rec.Index)
	// Unrecognised keys keep the fresh defaults.
	assert.Empty(t, rec.Title)
	assert.Equal(t, domain.StatusUnknown, rec.Status)
}

func TestExtractUsesFirstTableOnly(t *testing.T) {
	doc := `<html><body>
<table><tr><td>Index</td><td>LX001</td></tr></table>
<table><tr><td>Index</td><td>LX999</td></tr></table>
</body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "LX001", result.Record.Index)
	// Only the metadata table is detached; later tables stay in the body.
	assert.Contains(t, result.HTML, "LX999")
}

func TestExtractStripsEmptyElements(t *testing.T) {
	// Empty spans and paragraphs are rendering artefacts; a cell that only
	// contains them is empty, which breaks the two-cell row shape.
	doc := `<html><body>
<p><span></span></p>
<table>
<tr><td>Index</td><td><span></span></td></tr>
<tr><td>Title</td><td>Widget lifecycle</td></tr>
</table>
<p>Body.</p>
</body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Empty(t, result.Record.Index)
	assert.Equal(t, "Widget lifecycle", result.Record.Title)
	assert.NotContains(t, result.HTML, "<span>")
	assert.Contains(t, result.HTML, "Body.")
}

func TestExtractKeepsLineBreaksAndImages(t *testing.T) {
	doc := `<html><body>
<table><tr><td>Index</td><td>LX001</td></tr></table>
<p>Before<br/>after.</p>
<img src="diagram.png"/>
</body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, "<br/>")
	assert.Contains(t, result.HTML, `<img src="diagram.png"/>`)
}

func TestExtractWhitespaceHeavyCells(t *testing.T) {
	doc := `<html><body><table>
<tr><td>
  Status
</td><td>
  approved
</td></tr>
</table></body></html>`

	result, err := New().Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, result.Record.Status)
}

func TestCellAuthorText(t *testing.T) {
	c := cell{fragments: []fragment{
		{kind: fragmentMention, text: "Ana García"},
		{kind: fragmentSeparator, text: ", "},
		{kind: fragmentText, text: " Bob Jones "},
	}}
	assert.Equal(t, "Ana García,Bob Jones", c.authorText())
	assert.True(t, strings.Contains(c.text(), "Ana García"))
}
