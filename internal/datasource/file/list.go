package file

import (
	"bufio"
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"nbastats/internal/datasource"
)

// ReadList reads src line by line and returns the non-empty lines that do not
// start with '#', trimmed and in file order. It is used for team lists.
func ReadList(ctx context.Context, src datasource.Source) ([]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var out []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\uFEFF"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read list %s", datasource.Name(src))
	}
	return out, nil
}
