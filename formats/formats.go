// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/tonefeed/audio"
	"github.com/ik5/tonefeed/formats/aiff"
	"github.com/ik5/tonefeed/formats/mp3"
	"github.com/ik5/tonefeed/formats/vorbis"
	"github.com/ik5/tonefeed/formats/wav"
)

// Registry returns a registry keyed by lower case file extension without
// the dot.
func Registry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

// Extension is the registry key for a file name.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// fileSource closes the file together with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open decodes the recording at path, chosen by extension. Closing the
// source closes the file.
func Open(path string) (audio.Source, error) {
	return OpenWith(Registry(), path)
}

// OpenWith opens path with the decoder reg holds for its extension.
// Closing the source closes the file.
func OpenWith(reg *audio.Registry, path string) (audio.Source, error) {
	dec, ok := reg.Get(Extension(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &fileSource{Source: src, f: f}, nil
}
