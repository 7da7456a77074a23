package charts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	chartFont *truetype.Font
	fontOnce  sync.Once
	fontErr   error
)

// loadFont parses the Go Regular face once per process. It carries the
// degree sign used in every axis label.
func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			fontErr = fmt.Errorf("parse Go Regular: %w", err)
			return
		}
		chartFont = f
	})
	return chartFont, fontErr
}
