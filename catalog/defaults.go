package catalog

// Default returns the built-in pattern set covering the common desktop
// workflows the monitor knows how to label. Weights reflect how reliably a
// trigger identifies its workflow, not how automatable the workflow is.
func Default() (*Catalog, error) {
	return New([]Category{
		{
			Name:       "excel_operations",
			Keywords:   []string{"excel", "spreadsheet", "workbook", "worksheet", "cell", "formula", "pivot"},
			UIElements: []string{"Microsoft Excel", "Formula Bar"},
			Patterns:   []string{`\b[A-Z]{1,2}\d+\b`, `=\w+\(`, `SUM\(`, `AVERAGE\(`},
			Weight:     0.9,
		},
		{
			Name:       "word_operations",
			Keywords:   []string{"word", "document", "paragraph", "heading", "style"},
			UIElements: []string{"Microsoft Word", "Page Layout"},
			Patterns:   []string{`\.docx?\b`},
			Weight:     0.8,
		},
		{
			Name:       "file_management",
			Keywords:   []string{"file", "folder", "directory", "save as", "copy", "move", "rename", "delete"},
			UIElements: []string{"File Explorer", "This PC", "Downloads"},
			Patterns:   []string{`\.(txt|pdf|xlsx|zip)\b`, `[A-Z]:\\`},
			Weight:     0.7,
		},
		{
			Name:       "web_browsing",
			Keywords:   []string{"browser", "website", "chrome", "firefox", "address bar"},
			UIElements: []string{"New Tab", "Bookmarks"},
			Patterns:   []string{`https?://`, `www\.`, `\.(com|org)\b`},
			Weight:     0.6,
		},
		{
			Name:       "data_entry",
			Keywords:   []string{"entering", "typing", "input", "form", "field", "submit", "data"},
			UIElements: []string{"Text Box", "Input Field"},
			Patterns:   []string{`[A-Za-z0-9._-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`},
			Weight:     0.8,
		},
		{
			Name:       "image_editing",
			Keywords:   []string{"paint", "image", "photo", "crop", "resize", "canvas"},
			UIElements: []string{"Brush", "Color Picker"},
			Patterns:   []string{`\.(jpe?g|png|gif|bmp)\b`},
			Weight:     0.7,
		},
		{
			Name:       "coding_development",
			Keywords:   []string{"code", "python", "javascript", "terminal", "compile", "debug"},
			UIElements: []string{"VS Code", "Terminal"},
			Patterns:   []string{`def \w+\(`, `function \w+\(`, `class \w+`},
			Weight:     0.9,
		},
		{
			Name:       "email_communication",
			Keywords:   []string{"email", "outlook", "gmail", "inbox", "reply", "compose"},
			UIElements: []string{"Send", "New Message"},
			Patterns:   []string{`[A-Za-z0-9._-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`},
			Weight:     0.8,
		},
		{
			Name:     "calculation",
			Keywords: []string{"calculate", "compute", "formula", "sum", "average"},
			Patterns: []string{`=\w+\(`},
			Weight:   0.9,
		},
		{
			Name:     "formatting",
			Keywords: []string{"bold", "italic", "underline", "font", "format"},
			Weight:   0.6,
		},
		{
			Name:     "searching",
			Keywords: []string{"search", "find", "query", "filter"},
			Weight:   0.6,
		},
	})
}
