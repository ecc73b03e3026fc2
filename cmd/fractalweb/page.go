package main

import (
	"image"
	"image/png"
	"io"
)

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>fractal</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; }
img { image-rendering: pixelated; border: 1px solid #444; }
.row { display: flex; gap: 1em; }
</style>
</head>
<body>
<h1>escape-time strategies</h1>
<p>
<select id="view">
  <option value="full">full set</option>
  <option value="spike">left spike</option>
</select>
<button id="rerender">rerender</button>
<span id="status"></span>
</p>
<div class="row" id="targets"></div>
<script>
const names = ["cpu", "pool", "gpu"];
const row = document.getElementById("targets");
for (const n of names) {
  const d = document.createElement("div");
  d.innerHTML = '<h3>' + n + '</h3><a href="/render/' + n + '">' +
    '<img id="img-' + n + '" src="/preview/' + n + '" width="200" height="200"></a>';
  row.appendChild(d);
}
const status = document.getElementById("status");
const button = document.getElementById("rerender");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (m) => {
  const ev = JSON.parse(m.data);
  status.textContent = ev.busy + " rendering";
  button.disabled = ev.busy > 0;
  if (ev.type === "done") {
    const img = document.getElementById("img-" + ev.target);
    img.src = "/preview/" + ev.target + "?t=" + Date.now();
  }
};
button.onclick = () => {
  fetch("/rerender?view=" + document.getElementById("view").value, {method: "POST"});
};
</script>
</body>
</html>
`
