package handlers

import (
	"html/template"
	"time"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"formatTime": formatTime,
	}
	return template.Must(template.New("pages").Funcs(funcs).Parse(pagesTemplate))
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04")
}

const pagesTemplate = `
{{define "head"}}
<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.}}</title>
  <style>
    body { margin: 0 auto; max-width: 640px; padding: 24px; font-family: sans-serif; color: #222; }
    h1 { font-size: 22px; }
    form { margin: 16px 0; }
    label { display: block; margin: 8px 0 4px; }
    input[type=text], input[type=password], textarea { width: 100%; padding: 6px; box-sizing: border-box; }
    .error { color: #a33; margin: 8px 0; }
    .task { padding: 10px 0; border-bottom: 1px solid #ddd; }
    .task.done .title { text-decoration: line-through; color: #888; }
    .meta { font-size: 12px; color: #777; }
    .actions a { margin-right: 10px; font-size: 14px; }
    nav a { margin-right: 12px; }
  </style>
</head>
<body>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "landing"}}
{{template "head" "To-do"}}
<h1>To-do</h1>
<p>A small task list, one per user.</p>
<nav>
  <a href="/login/">Log in</a>
  <a href="/register/">Register</a>
</nav>
{{template "foot"}}
{{end}}

{{define "register"}}
{{template "head" "Register"}}
<h1>Register</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/register/">
  <label for="username">Username</label>
  <input type="text" id="username" name="username" value="{{.Username}}">
  <label for="password1">Password</label>
  <input type="password" id="password1" name="password1">
  <label for="password2">Confirm password</label>
  <input type="password" id="password2" name="password2">
  <button type="submit">Register</button>
</form>
<nav><a href="/login/">Already have an account? Log in</a></nav>
{{template "foot"}}
{{end}}

{{define "login"}}
{{template "head" "Log in"}}
<h1>Log in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login/">
  <label for="username">Username</label>
  <input type="text" id="username" name="username" value="{{.Username}}">
  <label for="password">Password</label>
  <input type="password" id="password" name="password">
  <button type="submit">Log in</button>
</form>
<nav><a href="/register/">No account? Register</a></nav>
{{template "foot"}}
{{end}}

{{define "dashboard"}}
{{template "head" "Dashboard"}}
<h1>Your tasks</h1>
<nav>
  <a href="/task/create/">New task</a>
  <a href="/logout/">Log out</a>
</nav>
{{range .Tasks}}
<div class="task{{if .Completed}} done{{end}}">
  <div class="title">{{.Title}}</div>
  {{if .Description}}<div>{{.Description}}</div>{{end}}
  <div class="meta">created {{formatTime .CreatedAt}}</div>
  <div class="actions">
    <a href="/task/{{.ID}}/toggle">{{if .Completed}}Reopen{{else}}Complete{{end}}</a>
    <a href="/task/{{.ID}}/edit/">Edit</a>
    <a href="/task/{{.ID}}/delete/">Delete</a>
  </div>
</div>
{{else}}
<p>No tasks yet.</p>
{{end}}
{{template "foot"}}
{{end}}

{{define "task_form"}}
{{template "head" .Heading}}
<h1>{{.Heading}}</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}">
  <label for="title">Title</label>
  <input type="text" id="title" name="title" value="{{.Title}}">
  <label for="description">Description</label>
  <textarea id="description" name="description" rows="3">{{.Description}}</textarea>
  <button type="submit">Save</button>
</form>
<nav><a href="/dashboard/">Back to dashboard</a></nav>
{{template "foot"}}
{{end}}

{{define "task_delete"}}
{{template "head" "Delete task"}}
<h1>Delete task</h1>
<p>Delete "{{.Task.Title}}"? This cannot be undone.</p>
<form method="post" action="/task/{{.Task.ID}}/delete/">
  <button type="submit">Delete</button>
</form>
<nav><a href="/dashboard/">Cancel</a></nav>
{{template "foot"}}
{{end}}
`
