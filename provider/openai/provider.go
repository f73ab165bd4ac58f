package openai

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/casualjim/rxagent/internal/shorttermmemory"
	"github.com/casualjim/rxagent/messages"
	"github.com/casualjim/rxagent/provider"
	"github.com/go-openapi/strfmt"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Provider struct {
	client *openai.Client
}

var _ provider.Provider = (*Provider)(nil)

func New(options ...option.RequestOption) *Provider {
	client := openai.NewClient(options...)
	return &Provider{
		client: client,
	}
}

func (p *Provider) buildRequest(params *provider.CompletionParams) (openai.ChatCompletionNewParams, error) {
	if params.Model == nil {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("no model selected")
	}
	if params.Thread == nil {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("no conversation thread")
	}

	result, err := messagesToOpenAI(params.Instructions, params.Thread.MessagesIter())
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}

	return openai.ChatCompletionNewParams{
		Messages:    openai.F(result),
		Model:       openai.F(params.Model.Name()),
		N:           openai.Int(1),
		Temperature: openai.Float(params.Temperature),
	}, nil
}

// ChatCompletion sends the thread and returns the first choice of the reply.
func (p *Provider) ChatCompletion(ctx context.Context, params provider.CompletionParams) (provider.Completion, error) {
	chatParams, err := p.buildRequest(&params)
	if err != nil {
		return provider.Completion{}, fmt.Errorf("failed to build request: %w", err)
	}

	chat, err := p.client.Chat.Completions.New(ctx, chatParams)
	if err != nil {
		return provider.Completion{}, provider.Error{
			Err:       err,
			RunID:     params.RunID,
			TurnID:    params.Thread.ID(),
			Timestamp: strfmt.DateTime(time.Now()),
		}
	}
	if len(chat.Choices) == 0 {
		return provider.Completion{}, provider.Error{
			Err:       provider.ErrEmptyCompletion,
			RunID:     params.RunID,
			TurnID:    params.Thread.ID(),
			Timestamp: strfmt.DateTime(time.Now()),
		}
	}

	choice := chat.Choices[0]
	return provider.Completion{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: &shorttermmemory.Usage{
			PromptTokens:     chat.Usage.PromptTokens,
			CompletionTokens: chat.Usage.CompletionTokens,
			TotalTokens:      chat.Usage.TotalTokens,
			Requests:         1,
		},
	}, nil
}

func messagesToOpenAI(instructions string, iter iter.Seq[messages.Message]) ([]openai.ChatCompletionMessageParamUnion, error) {
	var result []openai.ChatCompletionMessageParamUnion
	if instructions != "" {
		result = append(result, openai.SystemMessage(instructions))
	}
	for message := range iter {
		switch message.Role {
		case messages.RoleSystem:
			result = append(result, openai.SystemMessage(message.Content))
		case messages.RoleUser:
			result = append(result, openai.UserMessageParts(openai.TextPart(message.Content)))
		case messages.RoleAssistant:
			am := openai.ChatCompletionAssistantMessageParam{
				Role: openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
			}
			am.Content.Value = append(am.Content.Value, openai.TextPart(message.Content))
			result = append(result, am)
		default:
			return nil, fmt.Errorf("message with unknown role %q", message.Role)
		}
	}
	return result, nil
}
