package notice

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/noticecheck/pkg/license"
)

// Separator precedes every block of the document and closes it.
const Separator = "---------------------------------------------------------"

const header = "THIRD-PARTY SOFTWARE NOTICES AND INFORMATION\n" +
	"\n" +
	"This software includes the following third-party components.\n" +
	"The license terms for each of these components are provided later in this notice.\n" +
	"\n" +
	"\n"

// Render writes the notice for res followed by the bundled license texts.
// The output depends only on its inputs and always uses "\n" line endings
// (bundled texts are copied verbatim).
func Render(w io.Writer, res *license.Resolution, bundled []license.Bundled) error {
	bw := bufio.NewWriter(w)

	io.WriteString(bw, header)

	for _, d := range res.Dependencies {
		fmt.Fprintln(bw, Separator)
		fmt.Fprintln(bw)

		fmt.Fprintf(bw, "%s %s", d.Record.Name, d.Record.Version)
		if d.Identifier != "" {
			fmt.Fprintf(bw, " (%s)", d.Identifier)
		}
		fmt.Fprintln(bw)
		if d.Record.Repository != "" {
			fmt.Fprintln(bw, d.Record.Repository)
		}

		if d.Text != "" {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, "---")
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, d.Text)
		}
	}

	for _, a := range res.Additions {
		fmt.Fprintln(bw, Separator)
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, a.Text)
	}

	fmt.Fprintln(bw)

	for _, b := range bundled {
		fmt.Fprintln(bw, Separator)
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, b.ID)
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "---")
		fmt.Fprintln(bw)
		io.WriteString(bw, b.Text)
	}
	fmt.Fprintln(bw, Separator)

	// bufio.Writer keeps the first write error and reports it here.
	return bw.Flush()
}

// Document renders into memory.
func Document(res *license.Resolution, bundled []license.Bundled) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, res, bundled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
