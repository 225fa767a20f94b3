package goodreads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXML(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request><method>book_show</method></Request>
  <book>
    <id type="integer">42</id>
    <title><![CDATA[The Left Hand of Darkness]]></title>
    <popular_shelves>
      <shelf name="to-read" count="9"/>
    </popular_shelves>
  </book>
</GoodreadsResponse>`)

	resp, err := parseXML(body)
	require.NoError(t, err)

	_, hasRoot := resp["GoodreadsResponse"]
	assert.False(t, hasRoot, "root element should be unwrapped")

	assert.Equal(t, "42", resp.String("book", "id"))
	assert.Equal(t, "integer", resp.Attr("type", "book", "id"))
	assert.Equal(t, "The Left Hand of Darkness", resp.String("book", "title"))
	assert.Equal(t, "to-read", resp.Attr("name", "book", "popular_shelves", "shelf"))
	assert.Equal(t, "book_show", resp.String("Request", "method"))

	_, ok := resp.Lookup("book", "missing")
	assert.False(t, ok)
	assert.Empty(t, resp.String("nope"))
	assert.Empty(t, resp.Attr("id", "nope"))
}

func TestParseXMLEmptyRoot(t *testing.T) {
	resp, err := parseXML([]byte(`<GoodreadsResponse/>`))
	require.NoError(t, err)
	assert.Empty(t, resp)
}

func TestParseXMLWithoutRoot(t *testing.T) {
	resp, err := parseXML([]byte(`<error>Book not found</error>`))
	require.NoError(t, err)
	assert.Equal(t, "Book not found", resp.String("error"))
}

func TestParseMalformed(t *testing.T) {
	_, err := parseXML([]byte(`<book><id>1</book>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = parseJSON([]byte(`{"books": [`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestParseBodyJSON(t *testing.T) {
	resp, err := parseBody([]byte(`{"books":[{"id":7,"isbn":"0441172717"}]}`), FormatJSON)
	require.NoError(t, err)

	books, ok := resp["books"].([]any)
	require.True(t, ok)
	require.Len(t, books, 1)
	assert.Equal(t, "0441172717", books[0].(map[string]any)["isbn"])
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bare xml error element",
			body: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<error>Book not found</error>",
			want: "Book not found",
		},
		{
			name: "error inside the response root",
			body: `<GoodreadsResponse><error>author not found</error></GoodreadsResponse>`,
			want: "author not found",
		},
		{
			name: "json error",
			body: `{"error":"No books match those ISBNs."}`,
			want: "No books match those ISBNs.",
		},
		{
			name: "json message",
			body: `{"message":"rate limited"}`,
			want: "rate limited",
		},
		{
			name: "plain text uses the first line",
			body: "Invalid API key.\n<!-- trace 1234 -->",
			want: "Invalid API key.",
		},
		{
			name: "empty body",
			body: "  \n",
			want: "",
		},
		{
			name: "xml without an error element",
			body: `<html><body>oops</body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}

func TestTextOf(t *testing.T) {
	assert.Equal(t, "", textOf(nil))
	assert.Equal(t, "x", textOf("x"))
	assert.Equal(t, "7", textOf(map[string]any{"-type": "integer", "#text": "7"}))
	assert.Equal(t, "", textOf(map[string]any{"-nil": "true"}))
	assert.Equal(t, "3.5", textOf(3.5))
	assert.Equal(t, "true", textOf(true))
}
