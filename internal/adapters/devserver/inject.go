package devserver

import (
	"bytes"
)

// Routes served next to the build directory.
const (
	LiveReloadPath   = "/__press/livereload"
	LiveReloadScript = "/__press/livereload.js"
)

var (
	scriptTag  = []byte(`<script src="` + LiveReloadScript + `"></script>`)
	closingTag = []byte("</body>")
)

// InjectLiveReload inserts the live-reload script before the last </body>,
// or appends it when the document has none.
func InjectLiveReload(doc []byte) []byte {
	i := bytes.LastIndex(bytes.ToLower(doc), closingTag)
	if i < 0 {
		return append(bytes.Clone(doc), scriptTag...)
	}

	out := make([]byte, 0, len(doc)+len(scriptTag))
	out = append(out, doc[:i]...)
	out = append(out, scriptTag...)
	out = append(out, doc[i:]...)
	return out
}

// liveReloadJS reconnects after server restarts and reloads the page once it is back.
const liveReloadJS = `(function () {
  var url = (location.protocol === "https:" ? "wss://" : "ws://") + location.host + "` + LiveReloadPath + `";
  var lost = false;

  function swapStylesheet(path) {
    var links = document.querySelectorAll('link[rel="stylesheet"]');
    var swapped = false;
    for (var i = 0; i < links.length; i++) {
      var href = new URL(links[i].href, location.href);
      if (href.origin === location.origin && href.pathname === path) {
        href.searchParams.set("v", Date.now());
        links[i].href = href.toString();
        swapped = true;
      }
    }
    if (!swapped) location.reload();
  }

  function connect() {
    var ws = new WebSocket(url);
    ws.onopen = function () {
      if (lost) location.reload();
    };
    ws.onmessage = function (event) {
      var msg = JSON.parse(event.data);
      if (msg.type === "css" && msg.path) {
        swapStylesheet(msg.path);
      } else {
        location.reload();
      }
    };
    ws.onclose = function () {
      lost = true;
      setTimeout(connect, 1000);
    };
  }

  connect();
})();
`
