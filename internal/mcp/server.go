package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/config"
	"github.com/docuform/contact-extractor/internal/descriptions"
	"github.com/docuform/contact-extractor/internal/extractor"
	"github.com/docuform/contact-extractor/internal/logger"
	"github.com/docuform/contact-extractor/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *extractor.Service
	mcpServer *server.MCPServer
	logger    *logger.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *extractor.Service, log *logger.Logger) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
		logger:    log.WithComponent("mcp"),
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register contact extract file tool
	contactExtractFileTool := mcp.NewTool(
		"contact_extract_file",
		mcp.WithDescription(descriptions.ContactExtractFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(contactExtractFileTool, s.handleContactExtractFile)

	// Register contact extract text tool
	contactExtractTextTool := mcp.NewTool(
		"contact_extract_text",
		mcp.WithDescription(descriptions.ContactExtractTextDescription),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Document text to scan for contact fields"),
		),
	)
	s.mcpServer.AddTool(contactExtractTextTool, s.handleContactExtractText)

	// Register PDF read file tool
	pdfReadFileTool := mcp.NewTool(
		"pdf_read_file",
		mcp.WithDescription(descriptions.PDFReadFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfReadFileTool, s.handlePDFReadFile)

	// Register PDF validate file tool
	pdfValidateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.PDFValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfValidateFileTool, s.handlePDFValidateFile)

	// Register server info tool
	contactServerInfoTool := mcp.NewTool(
		"contact_server_info",
		mcp.WithDescription(descriptions.ContactServerInfoDescription),
	)
	s.mcpServer.AddTool(contactServerInfoTool, s.handleContactServerInfo)
}

// Handler functions
func (s *Server) handleContactExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := s.service.ExtractFile(extractor.ExtractFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.recordResult(record)
}

func (s *Server) handleContactExtractText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := s.service.ExtractText(extractor.ExtractTextRequest{Text: text})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.recordResult(record)
}

func (s *Server) handlePDFReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.PDFReadFile(pdf.PDFReadFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatPDFReadFileResult(result)), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.PDFValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages)", result.Path, result.Pages)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
		if result.Encrypted {
			responseText += "\nThe file is encrypted and cannot be processed."
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleContactServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.service.ServerInfo(s.config.ServerName, s.config.Version)
	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// recordResult renders an extraction record as indented JSON
func (s *Server) recordResult(record *extractor.Record) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode record: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Formatting methods
func (s *Server) formatPDFReadFileResult(result *pdf.PDFReadFileResult) string {
	responseText := fmt.Sprintf("Successfully read PDF: %s\n", result.Path)
	responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	responseText += fmt.Sprintf("Content Type: %s\n", result.ContentType)
	responseText += fmt.Sprintf("Has Images: %t\n", result.HasImages)
	if result.HasImages {
		responseText += fmt.Sprintf("Image Count: %d\n", result.ImageCount)
	}

	// Add guidance based on content type
	switch result.ContentType {
	case pdf.ContentTypeScannedImages:
		responseText += "\n🔍 RECOMMENDATION: This PDF appears to contain scanned images with little or no " +
			"extractable text. Contact extraction needs a text layer; run OCR on the document first.\n"
	case pdf.ContentTypeMixed:
		responseText += "\n💡 INFO: This PDF contains both text and images. " +
			"Contact extraction will only see the text layer.\n"
	case pdf.ContentTypeNoContent:
		responseText += "\n⚠️  WARNING: This PDF appears to have no readable content or images.\n"
	}

	responseText += "\nContent:\n"
	responseText += result.Content

	return responseText
}

func (s *Server) formatServerInfoResult(result *extractor.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("🔎 Extracted Fields: %s\n", strings.Join(result.Fields, ", "))
	text += fmt.Sprintf("🧭 Fallback Scan: %t\n\n", result.FallbackScan)

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run serves MCP over stdio until the client disconnects
func (s *Server) Run(_ context.Context) error {
	s.logger.Info("starting MCP server in stdio mode",
		zap.String("server_name", s.config.ServerName),
		zap.String("version", s.config.Version))

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
