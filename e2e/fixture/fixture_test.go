package fixture

import (
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServesPages(t *testing.T) {
	server := New()
	defer server.Close()

	for path, expected := range map[string]string{
		"/":     `<div id="card" draggable="true"`,
		"docs":  "<title>" + DocsTitle + "</title>",
		"frame": `<p id="inner">`,
	} {
		resp, err := http.Get(server.Address(path))
		require.NoError(t, err)
		body, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Contains(t, string(body), expected)
	}

	resp, err := http.Get(server.Address("/missing"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
