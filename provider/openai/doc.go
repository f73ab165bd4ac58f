/*
Package openai implements provider.Provider on top of the OpenAI chat
completions API.

# Design Decisions

  - One request per call: replies are read in full, never streamed
  - No retries: the SDK's retry loop is left to request options; failures surface as provider.Error
  - Lazy Initialization: Models initialize their provider on first use
  - Explicit temperature: every request carries the temperature, including 0

# Available Models

  - GPT4oMini(): the default evaluation model
  - GPT4o(): larger GPT-4o model

Custom models can be created using the Model() function:

	model := openai.Model("gpt-4.1-mini",
		option.WithAPIKey("your-key"),
		option.WithBaseURL("https://gateway.example.com/v1"),
	)

# Message Handling

The conversation thread is sent after the instructions as a leading system
message. Every thread message keeps its role: user prompts and tool results
are user messages, model replies are assistant messages.
*/
package openai
