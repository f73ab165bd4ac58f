package openai

import (
	"sync"

	"github.com/casualjim/rxagent/provider"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// GPT4oMini returns the gpt-4o-mini model.
func GPT4oMini(opts ...option.RequestOption) provider.Model {
	return Model(openai.ChatModelGPT4oMini, opts...)
}

// GPT4o returns the gpt-4o model.
func GPT4o(opts ...option.RequestOption) provider.Model {
	return Model(openai.ChatModelGPT4o, opts...)
}

// Model returns a model by name, served by a provider built from opts.
func Model(name string, opts ...option.RequestOption) provider.Model {
	return &model{
		name: name,
		opts: opts,
	}
}

var _ provider.Model = (*model)(nil)

type model struct {
	name string
	opts []option.RequestOption

	prov     provider.Provider
	provOnce sync.Once
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Provider() provider.Provider {
	m.provOnce.Do(func() {
		m.prov = New(m.opts...)
	})
	return m.prov
}
