// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes workspace tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/commands"
	"github.com/starford/folio/internal/transfer"
)

// Server wraps the MCP server with workspace tools.
type Server struct {
	mcp  *server.MCPServer
	cmds *commands.Commands
}

// New creates a new MCP server with all tools registered.
func New(cmds *commands.Commands, version string) *Server {
	s := &Server{cmds: cmds}

	s.mcp = server.NewMCPServer(
		"Folio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	idArg := func(what string) mcp.ToolOption {
		return mcp.WithString("id", mcp.Required(), mcp.Description("Identifier of the "+what))
	}

	s.mcp.AddTool(mcp.NewTool("create_scratch",
		mcp.WithDescription("Create a scratch note. Returns the stored scratch as JSON."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Scratch title")),
		mcp.WithString("content", mcp.Description("Scratch body")),
		mcp.WithArray("tags", mcp.Description("Tags"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("source", mcp.Description("Where the idea came from")),
	), s.createScratch)

	s.mcp.AddTool(mcp.NewTool("update_scratch",
		mcp.WithDescription("Update some fields of a scratch. Omitted fields are left as they are; "+
			"pass source as null to clear it."),
		idArg("scratch"),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New body")),
		mcp.WithArray("tags", mcp.Description("Replacement tags"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("source", mcp.Description("New source, or null to clear")),
	), s.updateScratch)

	s.mcp.AddTool(mcp.NewTool("read_scratch",
		mcp.WithDescription("Read one scratch as JSON."),
		idArg("scratch"),
	), s.readScratch)

	s.mcp.AddTool(mcp.NewTool("list_scratches",
		mcp.WithDescription("List all scratches as a JSON array."),
	), s.listScratches)

	s.mcp.AddTool(mcp.NewTool("delete_scratch",
		mcp.WithDescription("Delete a scratch. Deleting a missing scratch succeeds."),
		idArg("scratch"),
	), s.deleteScratch)

	s.mcp.AddTool(mcp.NewTool("create_project",
		mcp.WithDescription("Create a project with an empty outline. Returns the project as JSON."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
		mcp.WithString("template_id", mcp.Description("Template used when compiling the project")),
		mcp.WithString("output_dir", mcp.Description("Directory compiled output goes to")),
	), s.createProject)

	s.mcp.AddTool(mcp.NewTool("read_project",
		mcp.WithDescription("Read one project, including its whole outline, as JSON."),
		idArg("project"),
	), s.readProject)

	s.mcp.AddTool(mcp.NewTool("save_project",
		mcp.WithDescription("Replace a project with the given document. Read the layout "+
			"resource "+LayoutURI+" for the outline structure."),
		mcp.WithObject("project", mcp.Required(), mcp.Description("Full project document as returned by read_project")),
	), s.saveProject)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects as a JSON array."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project and its directory."),
		idArg("project"),
	), s.deleteProject)

	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List all templates as a JSON array."),
	), s.listTemplates)

	s.mcp.AddTool(mcp.NewTool("read_template",
		mcp.WithDescription("Read one template as JSON."),
		idArg("template"),
	), s.readTemplate)

	s.mcp.AddResource(
		mcp.NewResource(LayoutURI, "Workspace Layout",
			mcp.WithResourceDescription("How scratches, projects and templates are structured."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLayoutResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// bind decodes the tool arguments into dst through their JSON form.
func bind(req mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// jsonResult renders v as indented JSON, or err as a tool error.
func jsonResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func doneResult(msg string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) createScratch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in commands.CreateScratchRequest
	if err := bind(req, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.cmds.CreateScratch(in))
}

func (s *Server) updateScratch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in commands.UpdateScratchRequest
	if err := bind(req, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if in.ID == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	return jsonResult(s.cmds.UpdateScratch(in))
}

func (s *Server) readScratch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.cmds.LoadScratch(id))
}

func (s *Server) listScratches(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.cmds.ListScratches())
}

func (s *Server) deleteScratch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return doneResult("deleted: "+id, s.cmds.DeleteScratch(id))
}

func (s *Server) createProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in commands.CreateProjectRequest
	if err := bind(req, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.cmds.CreateProject(in))
}

func (s *Server) readProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.cmds.LoadProject(id))
}

func (s *Server) saveProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in struct {
		Project *transfer.ProjectDTO `json:"project"`
	}
	if err := bind(req, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if in.Project == nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	return doneResult("saved: "+in.Project.ID, s.cmds.SaveProject(*in.Project))
}

func (s *Server) listProjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.cmds.ListProjects())
}

func (s *Server) deleteProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return doneResult("deleted: "+id, s.cmds.DeleteProject(id))
}

func (s *Server) listTemplates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.cmds.ListTemplates())
}

func (s *Server) readTemplate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.cmds.LoadTemplate(id))
}

func (s *Server) readLayoutResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LayoutURI,
			MIMEType: "text/markdown",
			Text:     WorkspaceLayout,
		},
	}, nil
}
