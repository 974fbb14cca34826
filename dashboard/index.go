package dashboard

// indexPage is the static dashboard shell. It polls /api/stats and
// /api/jobs every 5 seconds, per SPEC_FULL.md §6.4.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>queuectl dashboard</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; color: #1b1b1b; }
  h1 { font-size: 1.4rem; }
  .stats { display: flex; gap: 1.5rem; flex-wrap: wrap; margin: 1.5rem 0; }
  .stat { border: 1px solid #ddd; border-radius: 6px; padding: 0.75rem 1rem; min-width: 90px; }
  .stat .label { font-size: 0.75rem; text-transform: uppercase; color: #666; }
  .stat .value { font-size: 1.5rem; font-weight: 600; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #eee; font-size: 0.9rem; }
  th { color: #666; font-weight: 600; }
  code { font-size: 0.8rem; }
</style>
</head>
<body>
<h1>queuectl dashboard</h1>
<div class="stats" id="stats"></div>
<table>
  <thead>
    <tr><th>id</th><th>command</th><th>state</th><th>priority</th><th>attempts</th><th>created</th></tr>
  </thead>
  <tbody id="jobs"></tbody>
</table>
<script>
async function refresh() {
  const [stats, jobs] = await Promise.all([
    fetch('/api/stats').then(r => r.json()),
    fetch('/api/jobs').then(r => r.json()),
  ]);
  const statsEl = document.getElementById('stats');
  statsEl.innerHTML = Object.entries(stats).map(([k, v]) =>
    '<div class="stat"><div class="label">' + k + '</div><div class="value">' +
    (typeof v === 'number' ? Math.round(v * 100) / 100 : v) + '</div></div>'
  ).join('');
  const tbody = document.getElementById('jobs');
  if (!jobs.length) {
    tbody.innerHTML = '<tr><td colspan="6">no jobs</td></tr>';
    return;
  }
  tbody.innerHTML = jobs.map(j =>
    '<tr><td><code>' + j.id.slice(0, 8) + '</code></td><td>' + j.command +
    '</td><td>' + j.state + '</td><td>' + (j.priority || 0) + '</td><td>' +
    j.attempts + '/' + j.max_retries + '</td><td>' + j.created_at + '</td></tr>'
  ).join('');
}
refresh();
setInterval(refresh, 5000);
</script>
</body>
</html>
`
