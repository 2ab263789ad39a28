package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/job-board-api/internal/constants"
)

// ChatCompleter is the subset of the OpenAI client used by AIService.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
}

// CoverLetterRequest holds what the model needs to know about both sides.
type CoverLetterRequest struct {
	CandidateName       string
	CandidateSkills     []string
	CandidateExperience string
	JobTitle            string
	CompanyName         string
	JobDescription      string
	RequiredSkills      []string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithClient creates an AIService on top of an existing client
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{client: client}
}

// DraftCoverLetter asks the model for a short cover letter the candidate can edit before applying
func (s *AIService) DraftCoverLetter(ctx context.Context, req CoverLetterRequest) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You help candidates write cover letters for job applications.

Candidate: %s
Candidate skills: %s
Candidate experience:
%s

Job title: %s
Company: %s
Required skills: %s
Job description:
%s

Write a cover letter of at most %d words in the language of the job description.
- Mention only skills and experience the candidate actually listed
- Do not invent degrees, employers or dates
- Return the letter text only, without a subject line or placeholders`,
		req.CandidateName,
		strings.Join(req.CandidateSkills, ", "),
		req.CandidateExperience,
		req.JobTitle,
		req.CompanyName,
		strings.Join(req.RequiredSkills, ", "),
		req.JobDescription,
		constants.MaxCoverLetterDraftWords,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	letter := strings.TrimSpace(resp.Choices[0].Message.Content)
	if letter == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return truncateRunes(letter, constants.MaxCoverLetterLength), nil
}

// truncateRunes cuts s to at most limit characters without splitting a rune.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}
