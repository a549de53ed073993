package server

// indexHTML is the bundled single-page UI. It talks to the JSON API only, so
// the page works from any browser with no build step.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>BioQuery</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1a202c; }
  h1 { font-size: 1.5rem; }
  textarea { width: 100%; height: 6rem; font-family: monospace; font-size: 0.9rem; padding: 0.5rem; box-sizing: border-box; }
  button { padding: 0.5rem 1.2rem; margin-top: 0.5rem; cursor: pointer; }
  pre { background: #f7fafc; border: 1px solid #e2e8f0; padding: 1rem; white-space: pre-wrap; word-break: break-all; }
  .error { color: #c53030; }
  .examples span { display: inline-block; background: #ebf8ff; border-radius: 4px; padding: 0.2rem 0.6rem; margin: 0.2rem; cursor: pointer; font-size: 0.85rem; }
  table { border-collapse: collapse; width: 100%; font-size: 0.85rem; }
  th, td { border: 1px solid #e2e8f0; padding: 0.3rem 0.6rem; text-align: left; }
</style>
</head>
<body>
<h1>BioQuery</h1>
<p>Ask in plain English: translate, reverse complement, ORFs, motifs, restriction sites, GC content.</p>
<div class="examples" id="examples"></div>
<textarea id="query" placeholder="e.g. What is the GC content of ATGGCGAATTACGTAGCTAGCT?"></textarea>
<br>
<button id="run">Run</button>
<pre id="output">Results appear here.</pre>
<h2>Recent queries</h2>
<table id="history"><thead><tr><th>Query</th><th>Tool</th><th>OK</th><th>When</th></tr></thead><tbody></tbody></table>
<script>
const out = document.getElementById('output');

async function run() {
  const query = document.getElementById('query').value;
  out.textContent = 'Running...';
  out.classList.remove('error');
  try {
    const resp = await fetch('/api/v1/query', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({query})
    });
    const data = await resp.json();
    if (!resp.ok || data.success === false) {
      out.classList.add('error');
      out.textContent = data.error || 'Request failed';
    } else {
      out.textContent = 'Tool: ' + data.tool + '\n\n' +
        (typeof data.result === 'string' ? data.result : JSON.stringify(data.result, null, 2));
    }
  } catch (err) {
    out.classList.add('error');
    out.textContent = String(err);
  }
  loadHistory();
}

async function loadExamples() {
  const resp = await fetch('/api/v1/examples');
  const data = await resp.json();
  const div = document.getElementById('examples');
  for (const query of data.examples) {
    const span = document.createElement('span');
    span.textContent = query.length > 60 ? query.slice(0, 60) + '…' : query;
    span.title = query;
    span.onclick = () => {
      document.getElementById('query').value = query;
    };
    div.appendChild(span);
  }
}

async function loadHistory() {
  const resp = await fetch('/api/v1/history?limit=10');
  if (!resp.ok) return;
  const data = await resp.json();
  const body = document.querySelector('#history tbody');
  body.innerHTML = '';
  for (const rec of data.history || []) {
    const tr = document.createElement('tr');
    for (const v of [rec.query, rec.tool, rec.success ? 'yes' : 'no', new Date(rec.created_at).toLocaleString()]) {
      const td = document.createElement('td');
      td.textContent = v;
      tr.appendChild(td);
    }
    body.appendChild(tr);
  }
}

document.getElementById('run').onclick = run;
loadExamples();
loadHistory();
</script>
</body>
</html>
`
