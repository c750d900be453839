package handler

import (
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/progression"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func numberField(req *structpb.Struct, key string) (float64, bool) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, false
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, false
	}
	return n.NumberValue, true
}

func stringList(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// stateFields maps a state onto struct fields using the persisted JSON names.
func stateFields(st *progression.State) map[string]interface{} {
	currencies := make(map[string]interface{}, len(st.Currencies))
	for id, amount := range st.Currencies {
		currencies[id] = amount
	}
	modifiers := make([]interface{}, len(st.Modifiers))
	for i, m := range st.Modifiers {
		modifiers[i] = map[string]interface{}{
			"id":               m.ID,
			"kind":             m.Kind,
			"label":            m.Label,
			"expiresAtEpochMs": m.ExpiresAtMs,
		}
	}

	return map[string]interface{}{
		"clickCount":      st.ClickCount,
		"streak":          st.Streak,
		"currencies":      currencies,
		"activeModifiers": modifiers,
		"seed":            st.Seed,
		"lastEventIndex":  st.LastEventIndex,
		"unlocks":         stringList(st.Unlocks),
		"title":           st.Title,
		"effects":         stringList(st.Effects),
		"accent":          st.Accent,
		"branchId":        st.BranchID,
		"branchIndex":     st.BranchIndex,
	}
}

func stateResponse(st *progression.State, extra map[string]interface{}) (*structpb.Struct, error) {
	fields := map[string]interface{}{FieldState: stateFields(st)}
	for k, v := range extra {
		fields[k] = v
	}
	return newResponse(fields)
}

func outcomeResponse(out progression.Outcome, accepted bool) (*structpb.Struct, error) {
	return newResponse(map[string]interface{}{
		FieldAccepted: accepted,
		FieldEffects:  stringList(out.Effects),
		FieldState:    stateFields(out.State),
	})
}

func newResponse(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", fmt.Errorf("failed to encode response: %w", err))
	}
	return resp, nil
}
