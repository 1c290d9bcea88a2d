package window

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontSourceOnce sync.Once
	fontSource     *text.GoTextFaceSource
	fontSourceErr  error

	fontCache sync.Map // map[float64]*text.Face
)

func loadFontSource() (*text.GoTextFaceSource, error) {
	fontSourceOnce.Do(func() {
		fontSource, fontSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if fontSourceErr != nil {
		return nil, fmt.Errorf("cannot load embedded font: %w", fontSourceErr)
	}
	return fontSource, nil
}

// font returns a Go Regular face of the given size. Faces are cached, the
// same pointer is handed out for the same size.
func font(size float64) (*text.Face, error) {
	if cached, ok := fontCache.Load(size); ok {
		return cached.(*text.Face), nil
	}

	source, err := loadFontSource()
	if err != nil {
		return nil, err
	}

	var face text.Face = &text.GoTextFace{Source: source, Size: size}
	fontCache.Store(size, &face)
	return &face, nil
}
