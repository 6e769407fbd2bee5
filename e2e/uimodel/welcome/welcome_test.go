package welcome

import (
	"testing"
	"time"

	"github.com/gravitational/uitest/lib/ui"
	"github.com/gravitational/uitest/lib/webdrivertest"
	"github.com/gravitational/uitest/lib/xlog"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func newPage(t *testing.T, driver *webdrivertest.Driver) *ui.Page {
	return ui.New(driver,
		ui.WithTimeout(200*time.Millisecond),
		ui.WithPollInterval(10*time.Millisecond),
		ui.WithLogger(xlog.NewLogger(t, logrus.WarnLevel, logrus.Fields{trace.Component: "welcome"})))
}

func TestOpensDefaultURL(t *testing.T) {
	driver := webdrivertest.New()
	page := New(newPage(t, driver))

	require.False(t, page.IsAt())
	require.NoError(t, page.Open())
	require.Equal(t, DefaultURL, driver.CurrentWindow().URL)
	require.True(t, page.IsAt())
}

func TestIsAtMatchesURLPrefix(t *testing.T) {
	driver := webdrivertest.New()
	page := NewWithURL(newPage(t, driver), "http://localhost:8080/")

	require.NoError(t, driver.Get("http://localhost:8080/?user=octocat"))
	require.True(t, page.IsAt())

	require.NoError(t, driver.Get("http://localhost:8081/"))
	require.False(t, page.IsAt())
}

func TestSearch(t *testing.T) {
	driver := webdrivertest.New()
	input := &webdrivertest.Element{Tag: "input", Value: "john", Selectors: []string{SearchInput.Value}}
	button := &webdrivertest.Element{
		Tag:       "button",
		Selectors: []string{SearchButton.Value},
		ClickErr:  &selenium.Error{Err: "element click intercepted"},
	}
	searchError := &webdrivertest.Element{Tag: "p", Hidden: true, InnerText: " there is no user with that username ", Selectors: []string{Error.Value}}
	button.OnClick = func() {
		searchError.Set(func(e *webdrivertest.Element) { e.Hidden = false })
	}
	driver.Add(input, button, searchError)
	page := New(newPage(t, driver))

	require.NoError(t, page.Search("octocat"))
	require.Equal(t, "octocat", input.Value)
	require.Equal(t, 1, button.ScriptClicks)

	text, err := page.SearchError()
	require.NoError(t, err)
	require.Equal(t, "there is no user with that username", text)
}
