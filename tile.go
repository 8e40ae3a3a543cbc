package server

import (
	"encoding/json"
	"fmt"
)

// Cause is the trigger condition of a tile interaction rule. Causes compare
// structurally by type. Types the engine does not recognize are preserved for
// forward compatibility but never match and are never produced by actions.
type Cause struct {
	Type string `json:"type"`
}

// CauseUse is fired by a member using a tile.
var CauseUse = Cause{Type: "Use"}

// Recognized reports whether the cause is one the engine can produce.
func (c Cause) Recognized() bool { return c == CauseUse }

// Effect type identifiers.
const (
	EffectTransformTile = "TransformTile"
	EffectOpenDialog    = "OpenDialog"
)

// Effect is one consequence of a matched cause.
type Effect interface {
	EffectType() string
}

// TransformTileEffect replaces the acted-on cell with another blueprint.
type TransformTileEffect struct {
	Type        string `json:"type"`
	BlueprintID string `json:"blueprint_id"`
}

func NewTransformTileEffect(blueprintID string) TransformTileEffect {
	return TransformTileEffect{Type: EffectTransformTile, BlueprintID: blueprintID}
}

func (TransformTileEffect) EffectType() string { return EffectTransformTile }

// OpenDialogEffect presents a text message to the acting member, one line at
// a time. It causes no shared state change.
type OpenDialogEffect struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewOpenDialogEffect(message string) OpenDialogEffect {
	return OpenDialogEffect{Type: EffectOpenDialog, Message: message}
}

func (OpenDialogEffect) EffectType() string { return EffectOpenDialog }

// UnknownEffect preserves an effect the engine does not recognize. Applying
// it is a warning, never an error.
type UnknownEffect struct {
	Type string
	Raw  json.RawMessage
}

func (e UnknownEffect) EffectType() string { return e.Type }

func (e UnknownEffect) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{e.Type})
}

// effectDecoders dispatches wire effects by their type discriminant.
var effectDecoders = map[string]func(json.RawMessage) (Effect, error){
	EffectTransformTile: func(data json.RawMessage) (Effect, error) {
		var effect TransformTileEffect
		err := json.Unmarshal(data, &effect)
		return effect, err
	},
	EffectOpenDialog: func(data json.RawMessage) (Effect, error) {
		var effect OpenDialogEffect
		err := json.Unmarshal(data, &effect)
		return effect, err
	},
}

// DecodeEffect parses a wire effect. Unrecognized types decode into an
// UnknownEffect rather than failing.
func DecodeEffect(data json.RawMessage) (Effect, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("malformed effect: %w", err)
	}
	decode, ok := effectDecoders[head.Type]
	if !ok {
		return UnknownEffect{Type: head.Type, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	return decode(data)
}

// Effects is an ordered effect sequence with tagged-union decoding.
type Effects []Effect

func (e *Effects) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("effects must be a list: %w", err)
	}
	effects := make(Effects, 0, len(raw))
	for _, item := range raw {
		effect, err := DecodeEffect(item)
		if err != nil {
			return err
		}
		effects = append(effects, effect)
	}
	*e = effects
	return nil
}

// EffectRule pairs a cause with the effects it triggers. On the wire a rule
// is a [cause, effects] pair.
type EffectRule struct {
	Cause   Cause
	Effects Effects
}

func (r EffectRule) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Cause, r.Effects})
}

func (r *EffectRule) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		return fmt.Errorf("effect rule must be a [cause, effects] pair")
	}
	if err := json.Unmarshal(pair[0], &r.Cause); err != nil {
		return fmt.Errorf("malformed cause: %w", err)
	}
	return r.Effects.UnmarshalJSON(pair[1])
}

// Tile is a blueprint: a tile definition with a stable id, mutable content
// and an ordered cause/effect rule table.
type Tile struct {
	ID      string       `json:"id"`
	Image   string       `json:"image"`
	Wall    bool         `json:"wall"`
	Effects []EffectRule `json:"effects"`
}

// Validate rejects an effect table with more than one rule per cause.
func (t *Tile) Validate() error {
	seen := make(map[Cause]struct{}, len(t.Effects))
	for _, rule := range t.Effects {
		if _, ok := seen[rule.Cause]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCause, rule.Cause.Type)
		}
		seen[rule.Cause] = struct{}{}
	}
	return nil
}

// Resolve returns the effect sequence triggered by cause: the first rule with
// a structurally equal cause wins. Unrecognized causes never match.
func (t *Tile) Resolve(cause Cause) Effects {
	if !cause.Recognized() {
		return nil
	}
	for _, rule := range t.Effects {
		if rule.Cause == cause {
			return rule.Effects
		}
	}
	return nil
}

// Clone returns a copy with its own rule table.
func (t *Tile) Clone() *Tile {
	clone := *t
	clone.Effects = make([]EffectRule, len(t.Effects))
	for i, rule := range t.Effects {
		clone.Effects[i] = EffectRule{
			Cause:   rule.Cause,
			Effects: append(Effects(nil), rule.Effects...),
		}
	}
	return &clone
}
