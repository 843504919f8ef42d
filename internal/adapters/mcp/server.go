// Package mcp exposes the bot over the Model Context Protocol, so agent
// hosts can drive conversations as tool calls.
package mcp

import (
	"context"
	"strings"

	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported in the MCP handshake.
const Version = "0.1.0"

// Bot is the narrow surface the adapter needs from the turn coordinator.
type Bot interface {
	OnTurn(ctx context.Context, activity *domain.Activity, responder ports.Responder) error
}

// TurnResponse is the structured result of one tool-driven turn.
type TurnResponse struct {
	Replies []string `json:"replies" jsonschema_description:"Messages the bot sent this turn, in order"`
}

// Server wraps a Bot and exposes it as an MCP server.
type Server struct {
	bot       Bot
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(bot Bot) *Server {
	s := &Server{
		bot:       bot,
		mcpServer: server.NewMCPServer("cascade-mcp", Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send a user message into a conversation and return the bot's replies for that turn."),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Stable conversation identifier")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Stable user identifier")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The user's utterance")),
		mcp.WithOutputSchema[TurnResponse](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendMessage))

	joinTool := mcp.NewTool("join_conversation",
		mcp.WithDescription("Report a user joining a conversation; triggers the one-shot welcome on first contact."),
		mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Stable conversation identifier")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Stable user identifier")),
		mcp.WithOutputSchema[TurnResponse](),
	)
	s.mcpServer.AddTool(joinTool, mcp.NewStructuredToolHandler(s.handleJoin))
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (TurnResponse, error) {
	activity := &domain.Activity{
		Type:           domain.ActivityMessage,
		ConversationID: stringArg(args, "conversation_id"),
		From:           domain.ChannelAccount{ID: stringArg(args, "user_id")},
		Recipient:      domain.ChannelAccount{ID: "cascade"},
		Text:           strings.TrimSpace(stringArg(args, "text")),
	}
	return s.runTurn(ctx, activity)
}

func (s *Server) handleJoin(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (TurnResponse, error) {
	userID := stringArg(args, "user_id")
	activity := &domain.Activity{
		Type:           domain.ActivityConversationUpdate,
		ConversationID: stringArg(args, "conversation_id"),
		From:           domain.ChannelAccount{ID: userID},
		Recipient:      domain.ChannelAccount{ID: "cascade"},
		MembersAdded:   []domain.ChannelAccount{{ID: userID}},
	}
	return s.runTurn(ctx, activity)
}

func (s *Server) runTurn(ctx context.Context, activity *domain.Activity) (TurnResponse, error) {
	var resp TurnResponse
	responder := ports.ResponderFunc(func(ctx context.Context, text string) error {
		resp.Replies = append(resp.Replies, text)
		return nil
	})
	if err := s.bot.OnTurn(ctx, activity, responder); err != nil {
		return TurnResponse{}, err
	}
	return resp, nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}
