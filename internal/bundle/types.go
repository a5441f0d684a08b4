package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnknownOwner is substituted when a bundle reports no owner.
const UnknownOwner = "unknown"

// Bundle is a fetched gist. ID is always the identifier that was
// requested, whichever channel produced the data.
type Bundle struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Files       []File `json:"files" yaml:"files"`
	Owner       string `json:"owner" yaml:"owner"`
	URL         string `json:"url" yaml:"url"`
}

// File is one file of a bundle.
type File struct {
	Filename string `json:"filename" yaml:"filename"`
	Content  string `json:"content" yaml:"content"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// File returns the file named filename, if present.
func (b *Bundle) File(filename string) (File, bool) {
	for _, f := range b.Files {
		if f.Filename == filename {
			return f, true
		}
	}
	return File{}, false
}

// wireFile is the per-file shape shared by the gh CLI and REST responses.
type wireFile struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

type namedFile struct {
	Name string
	wireFile
}

// fileList decodes the "files" object of a gist response, keeping the
// order its keys appear in. A JSON null leaves the list nil.
type fileList []namedFile

// UnmarshalJSON implements json.Unmarshaler.
func (l *fileList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("files: expected object, got %v", tok)
	}

	out := fileList{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var f wireFile
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("files: %s: %w", name, err)
		}
		// A repeated key keeps its first position and its last value,
		// as a map would.
		if i, ok := index[name]; ok {
			out[i].wireFile = f
			continue
		}
		index[name] = len(out)
		out = append(out, namedFile{Name: name, wireFile: f})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// newBundle assembles a Bundle from channel data, applying the owner and
// description defaults. Files keep the order the source listed them in.
func newBundle(id, description, owner, url string, files fileList) *Bundle {
	if owner == "" {
		owner = UnknownOwner
	}

	out := make([]File, 0, len(files))
	for _, f := range files {
		out = append(out, File{Filename: f.Name, Content: f.Content, Language: f.Language})
	}

	return &Bundle{
		ID:          id,
		Description: description,
		Files:       out,
		Owner:       owner,
		URL:         url,
	}
}
