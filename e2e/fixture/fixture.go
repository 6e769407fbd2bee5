// Package fixture serves a local replica of the landing page together with
// pages exercising frames, windows, dialogs and delayed elements
package fixture

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

const (
	// UnknownUser is reported as missing by the search form
	UnknownUser = "nobody-here"
	// DocsTitle is the title of the window opened from the landing page
	DocsTitle = "Docs"
	// AlertText is the text of the dialog opened from the landing page
	AlertText = "Are you sure?"
)

// Server serves the fixture pages
type Server struct {
	*httptest.Server
}

// New starts a new fixture server
func New() *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", page("/", landing))
	mux.HandleFunc("/docs", page("/docs", docs))
	mux.HandleFunc("/frame", page("/frame", frame))
	return &Server{Server: httptest.NewServer(mux)}
}

// Address returns the absolute URL of path
func (r *Server) Address(path string) string {
	return r.URL + "/" + strings.TrimPrefix(path, "/")
}

func page(path, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != path {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}
}

const landing = `<!DOCTYPE html>
<html>
<head><title>GitHub User</title></head>
<body>
<section class="search">
  <form id="search">
    <input type="text" placeholder="enter github user">
    <button type="submit">search</button>
  </form>
  <p class="error" style="display:none">there is no user with that username</p>
  <h3>requests : 60 / 60</h3>
</section>
<section id="user"><h4></h4></section>

<div style="position:relative;width:200px">
  <button id="covered">covered</button>
  <div id="overlay" style="position:absolute;top:0;left:0;width:200px;height:40px"></div>
</div>
<p id="covered-result"></p>

<button id="delayed" disabled>delayed</button>
<p id="delayed-result"></p>

<div id="spinner">loading</div>

<label><input type="checkbox" id="terms"> accept</label>

<select id="sort">
  <option value="followers">Followers</option>
  <option value="repos">Repositories</option>
  <option value="stars">Stars</option>
</select>

<button id="confirm">confirm</button>
<p id="confirm-result"></p>

<a id="open-docs" href="#">docs</a>

<iframe id="frame" src="/frame"></iframe>

<div id="menu">menu<ul id="menu-items" style="display:none"><li>Profile</li></ul></div>

<div id="repo">repository</div>
<p id="repo-result"></p>

<div id="follower">follower</div>
<p id="follower-result"></p>

<div id="card" draggable="true" style="width:100px;height:40px">card</div>
<div id="column" style="width:200px;height:80px;border:1px solid">column</div>
<p id="column-result"></p>

<div style="height:3000px"></div>
<footer id="footer">footer</footer>

<script>
  var requests = 60;
  document.getElementById("search").addEventListener("submit", function(e) {
    e.preventDefault();
    var login = this.querySelector("input").value;
    var error = document.querySelector(".search .error");
    requests--;
    document.querySelector(".search h3").textContent = "requests : " + requests + " / 60";
    if (login === "` + UnknownUser + `") {
      error.style.display = "block";
      return;
    }
    error.style.display = "none";
    document.querySelector("#user h4").textContent = login;
  });
  document.getElementById("covered").addEventListener("click", function() {
    document.getElementById("covered-result").textContent = "clicked";
  });
  document.getElementById("delayed").addEventListener("click", function() {
    document.getElementById("delayed-result").textContent = "clicked";
  });
  setTimeout(function() { document.getElementById("delayed").disabled = false; }, 700);
  setTimeout(function() { document.getElementById("spinner").remove(); }, 500);
  document.getElementById("confirm").addEventListener("click", function() {
    var result = confirm("` + AlertText + `");
    document.getElementById("confirm-result").textContent = result ? "confirmed" : "cancelled";
  });
  document.getElementById("open-docs").addEventListener("click", function(e) {
    e.preventDefault();
    window.open("/docs", "docs");
  });
  document.getElementById("menu").addEventListener("mouseover", function() {
    document.getElementById("menu-items").style.display = "block";
  });
  document.getElementById("repo").addEventListener("dblclick", function() {
    document.getElementById("repo-result").textContent = "double-clicked";
  });
  document.getElementById("follower").addEventListener("contextmenu", function(e) {
    e.preventDefault();
    document.getElementById("follower-result").textContent = "context menu";
  });
  var dragging = false;
  var card = document.getElementById("card");
  var column = document.getElementById("column");
  function dropped() {
    if (!dragging) {
      return;
    }
    dragging = false;
    column.appendChild(card);
    document.getElementById("column-result").textContent = "dropped";
  }
  card.addEventListener("mousedown", function() { dragging = true; });
  card.addEventListener("dragstart", function() { dragging = true; });
  column.addEventListener("dragover", function(e) { e.preventDefault(); });
  column.addEventListener("drop", function(e) { e.preventDefault(); dropped(); });
  column.addEventListener("mouseup", dropped);
</script>
</body>
</html>
`

const docs = `<!DOCTYPE html>
<html><head><title>` + DocsTitle + `</title></head><body><h1>Docs</h1></body></html>
`

const frame = `<!DOCTYPE html>
<html><head><title>Frame</title></head><body><p id="inner">inside frame</p></body></html>
`
