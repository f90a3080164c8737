// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const opRender = "Render"

// Render returns a human-readable, row-by-row rendering of m for diagnostics.
// The output is not a data interchange format and is not meant to be parsed.
//
// With no options the result matches m's String() for *Dense and *View:
// one "[a, b, c]" line per row, values in %g.
//
// Errors:
//   - ErrNilMatrix; any error returned by m.At for foreign implementations.
func Render(m Matrix, opts ...RenderOption) (string, error) {
	if err := ValidateNotNil(m); err != nil {
		return "", matrixErrorf(opRender, err)
	}
	o := gatherRenderOptions(opts...)

	format := "%g"
	if o.precision >= 0 {
		format = "%." + strconv.Itoa(o.precision) + "f"
	}
	sprint := func(v float32) string { return fmt.Sprintf(format, v) }
	if o.locale != language.Und {
		p := message.NewPrinter(o.locale)
		sprint = func(v float32) string { return p.Sprintf(format, v) }
	}

	rows, cols := m.Rows(), m.Cols()
	var b strings.Builder
	if o.header {
		fmt.Fprintf(&b, "%d x %d\n", rows, cols)
	}
	var v float32
	var err error
	for i := 0; i < rows; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return "", matrixErrorf(opRender, err)
			}
			b.WriteString(sprint(v))
			if j+1 < cols {
				b.WriteString(o.separator)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String(), nil
}
