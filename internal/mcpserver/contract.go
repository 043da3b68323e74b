package mcpserver

// LayoutURI is the resource describing the workspace layout.
const LayoutURI = "folio://workspace-layout"

// WorkspaceLayout describes how entities are stored and shaped, for LLM
// consumers that read or edit a workspace.
const WorkspaceLayout = `# Folio Workspace Layout

A workspace is a directory with three subdirectories. Every entity is one
pretty-printed JSON document, written atomically.

` + "```" + `
<root>/
  scratches/<id>.json
  projects/<id>/project.json
  templates/<id>.json
` + "```" + `

## Scratch

Short standalone note. Fields: id, title, content, created_at, modified_at
(RFC 3339, UTC), tags (list, may be empty), source (string or null).

## Project

Fields: id, title, created_at, modified_at, settings {template_id, output_dir},
and outline: the root node, titled "Root".

Each outline node has: id (unique within the project), title, content
(string or null), children (nodes, in order) and scratches (links, in order).

A scratch link has: scratch_id, mode ("Include" copies the scratch body into
the node; "Link" references it) and insertion flags {body, footnote,
reference, appendix}.

## Rules

1. Use the tools; never write the files directly while the server runs.
2. save_project replaces the whole project. Load it, edit the outline, save it back.
3. Unknown link modes are treated as "Include".
4. Deleting a scratch does not remove links to it from project outlines.

## Template

Fields: id, name, content.
`
