package html

import "testing"

func TestParseExtractsParagraphs(t *testing.T) {
	src := `<html><head><title> Doc Title </title><style>p { color: red }</style></head>
<body>
  <h1>Heading</h1>
  <p>One  two
     three.</p>
  <p>Para<br>two <b>bold</b> end</p>
  <script>alert("x")</script>
  <ul><li>a</li><li>b</li></ul>
</body></html>`

	doc, err := NewParser().ParseString(src)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Title != "Doc Title" {
		t.Errorf("Title = %q, want %q", doc.Title, "Doc Title")
	}

	want := "Heading\n\nOne two three.\n\nPara\ntwo bold end\n\na\n\nb"
	if doc.Text != want {
		t.Errorf("Text = %q\nwant %q", doc.Text, want)
	}
}

func TestParseFallsBackToH1(t *testing.T) {
	doc, err := NewParser().ParseString("<h1>  Main\n heading </h1><p>body</p>")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Main heading" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Text != "Main heading\n\nbody" {
		t.Errorf("Text = %q", doc.Text)
	}
}

func TestParsePre(t *testing.T) {
	src := "<p>intro</p><pre>line one\n    indented\n\n\nafter gap</pre>"

	doc, err := NewParser().ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	if want := "intro\n\nline one\nindented\n\nafter gap"; doc.Text != want {
		t.Errorf("Text = %q, want %q", doc.Text, want)
	}

	p := &Parser{KeepIndentation: true}
	doc, err = p.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	if want := "intro\n\nline one\n    indented\n\nafter gap"; doc.Text != want {
		t.Errorf("Text with indentation = %q, want %q", doc.Text, want)
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := NewParser().ParseString("")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text != "" || doc.Title != "" {
		t.Errorf("unexpected document: %+v", doc)
	}
}
