package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/kpaschen/tspaa/lib/paa"
)

// Processor turns sequence messages into result messages.
type Processor struct {
	transformer *paa.Transformer
}

func NewProcessor(t *paa.Transformer) *Processor {
	return &Processor{transformer: t}
}

// transformerFor keeps the worker default when a message carries no
// positive override.
func (p *Processor) transformerFor(numIntervals int) (*paa.Transformer, error) {
	if numIntervals <= 0 || numIntervals == p.transformer.NumIntervals() {
		return p.transformer, nil
	}
	config := p.transformer.Settings()
	config.NumIntervals = numIntervals
	return paa.NewTransformer(config)
}

func (p *Processor) Process(msg *SequenceMessage) (*ResultMessage, error) {
	if (msg.Sequence == nil) == (msg.Series == nil) {
		return nil, fmt.Errorf("%w: message must contain exactly one of sequence or series", paa.ErrInvalidInput)
	}
	t, err := p.transformerFor(msg.NumIntervals)
	if err != nil {
		return nil, err
	}
	ret := &ResultMessage{NumIntervals: t.NumIntervals()}
	if msg.Sequence != nil {
		seq, err := t.TransformLabeled(*msg.Sequence)
		if err != nil {
			return nil, err
		}
		ret.Sequence = &seq
		return ret, nil
	}
	ret.Series, err = t.TransformMultivariate(msg.Series)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ProcessBytes decodes a json SequenceMessage and returns the encoded result.
func (p *Processor) ProcessBytes(value []byte) ([]byte, error) {
	msg := &SequenceMessage{}
	if err := json.Unmarshal(value, msg); err != nil {
		return nil, fmt.Errorf("failed to decode sequence message: %w", err)
	}
	result, err := p.Process(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}
