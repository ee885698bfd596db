package service

import (
	"fmt"
	"strings"

	"github.com/campusconnect/portal/internal/core/domain"
)

// roleSuggestions is the per-role prompt carousel shown while the
// conversation is still empty.
var roleSuggestions = map[string][]string{
	domain.RoleStudent: {
		"Help me with my coursework and assignments",
		"Analyze my uploaded resume and documents",
		"Show me upcoming campus events",
		"Review my academic progress",
		"Find study groups for my courses",
		"Upload documents for Q&A assistance",
	},
	domain.RoleTeacher: {
		"Show my teaching schedule",
		"List my registered students",
		"Help with proposal writing",
		"Enhanced document analysis tools",
		"Review student applications",
		"Generate course reports",
	},
	domain.RoleAdmin: {
		"Show analytics dashboard",
		"Generate system reports",
		"User management tools",
		"Review user activity logs",
		"System health monitoring",
		"Export analytics data",
	},
	domain.RoleOrganization: {
		"Event information and management",
		"Collaboration tools",
		"Document processing services",
		"Organizational knowledge base",
		"Team coordination tools",
		"Bulk document analysis",
	},
}

// suggestionsFor returns the carousel for a role, falling back to the
// student set for unknown roles.
func suggestionsFor(role string) []string {
	if s, ok := roleSuggestions[role]; ok {
		return s
	}
	return roleSuggestions[domain.RoleStudent]
}

// greetingFor returns the assistant's opening line for a role.
func greetingFor(role, name string) string {
	switch role {
	case domain.RoleTeacher:
		return fmt.Sprintf("Welcome %s! I'm Lexie, here to assist with teaching, research, student management, and academic collaboration.", name)
	case domain.RoleAdmin:
		return fmt.Sprintf("Hello %s! I'm Lexie, your administrative assistant for user management, analytics, and system oversight.", name)
	case domain.RoleOrganization:
		return fmt.Sprintf("Greetings %s! I'm Lexie, here to help with partnerships, events, and organizational collaboration.", name)
	default:
		return fmt.Sprintf("Hi %s! I'm Lexie, your AI study companion. I can help you with coursework, career guidance, and campus life!", name)
	}
}

// privacyNotice is shown under the suggestion panel before the first send.
const privacyNotice = "Your data is secure and personalized just for you."

// identityTriggers are questions about the assistant itself, answered locally
// without an upstream round trip.
var identityTriggers = []string{
	"who are you",
	"what is your name",
	"are you a bot",
	"who made you",
	"your identity",
}

// isIdentityQuery reports whether msg asks about the assistant's identity.
func isIdentityQuery(msg string) bool {
	lower := strings.ToLower(msg)
	for _, t := range identityTriggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// identityReply is the local answer to an identity query.
func identityReply(name, role string) string {
	return fmt.Sprintf("I'm Lexie, your personal AI assistant for CampusConnect! I'm here to help you, %s, with your %s activities, document analysis, voice interactions, and provide personalized assistance based on your preferences.", name, role)
}
