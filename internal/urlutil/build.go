package urlutil

import (
	"net/url"
	"path"
)

// BuildURL joins a base URL with a path and query parameters, handling
// slashes correctly. Parameters with empty values are omitted.
func BuildURL(base, p string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.Path = path.Join(u.Path, p)

	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
