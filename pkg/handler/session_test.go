package handler

import (
	"context"
	"net"
	"testing"

	"github.com/AccelByte/extend-button-story/pkg/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestSessionService_Press(t *testing.T) {
	svc, mr := setupTestService(t)
	ctx := context.Background()

	resp, err := svc.Press(ctx, request(t, map[string]interface{}{FieldPlayerID: "player-1"}))
	if err != nil {
		t.Fatalf("Press() error = %v", err)
	}

	fields := resp.AsMap()
	if fields[FieldAccepted] != true {
		t.Errorf("accepted = %v, expected true", fields[FieldAccepted])
	}
	effects, _ := fields[FieldEffects].([]interface{})
	if len(effects) == 0 || effects[0] != "milestone:quiet" {
		t.Errorf("effects = %v, expected milestone:quiet first", effects)
	}
	st := stateOf(t, resp)
	if st["clickCount"] != float64(1) {
		t.Errorf("clickCount = %v, expected 1", st["clickCount"])
	}
	if st["title"] != "The room is quiet." {
		t.Errorf("title = %v, expected The room is quiet.", st["title"])
	}

	if !mr.Exists(store.KeyPrefix + "player-1") {
		t.Error("expected state to be persisted")
	}
}

func TestSessionService_InvalidArguments(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "press without player",
			call: func() error {
				_, err := svc.Press(ctx, request(t, map[string]interface{}{}))
				return err
			},
		},
		{
			name: "jump with negative target",
			call: func() error {
				_, err := svc.Jump(ctx, request(t, map[string]interface{}{FieldPlayerID: "p", FieldTarget: -1}))
				return err
			},
		},
		{
			name: "jump with fractional target",
			call: func() error {
				_, err := svc.Jump(ctx, request(t, map[string]interface{}{FieldPlayerID: "p", FieldTarget: 2.5}))
				return err
			},
		},
		{
			name: "jump without target",
			call: func() error {
				_, err := svc.Jump(ctx, request(t, map[string]interface{}{FieldPlayerID: "p"}))
				return err
			},
		},
		{
			name: "grant without kind",
			call: func() error {
				_, err := svc.GrantModifier(ctx, request(t, map[string]interface{}{FieldPlayerID: "p", FieldDurationMs: 1000}))
				return err
			},
		},
		{
			name: "grant with zero duration",
			call: func() error {
				_, err := svc.GrantModifier(ctx, request(t, map[string]interface{}{FieldPlayerID: "p", FieldKind: "overclock", FieldDurationMs: 0}))
				return err
			},
		},
		{
			name: "purchase without upgrade",
			call: func() error {
				_, err := svc.Purchase(ctx, request(t, map[string]interface{}{FieldPlayerID: "p"}))
				return err
			},
		},
		{
			name: "choose without branch",
			call: func() error {
				_, err := svc.ChooseBranch(ctx, request(t, map[string]interface{}{FieldPlayerID: "p"}))
				return err
			},
		},
		{
			name: "preferences with string flag",
			call: func() error {
				_, err := svc.SetPreferences(ctx, request(t, map[string]interface{}{FieldPlayerID: "p", FieldReducedIntensity: "yes"}))
				return err
			},
		},
		{
			name: "state with blank player",
			call: func() error {
				_, err := svc.GetState(ctx, request(t, map[string]interface{}{FieldPlayerID: "  "}))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("code = %v, expected %v", status.Code(err), codes.InvalidArgument)
			}
		})
	}
}

func TestSessionService_StoryFlow(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	player := map[string]interface{}{FieldPlayerID: "player-1"}

	resp, err := svc.Jump(ctx, request(t, map[string]interface{}{FieldPlayerID: "player-1", FieldTarget: 100}))
	if err != nil {
		t.Fatalf("Jump() error = %v", err)
	}
	if stateOf(t, resp)["clickCount"] != float64(100) {
		t.Errorf("clickCount = %v, expected 100", stateOf(t, resp)["clickCount"])
	}

	resp, err = svc.GetState(ctx, request(t, player))
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	options, _ := resp.AsMap()[FieldBranchOptions].([]interface{})
	if len(options) != 2 {
		t.Fatalf("branch_options = %v, expected two", options)
	}

	resp, err = svc.ChooseBranch(ctx, request(t, map[string]interface{}{FieldPlayerID: "player-1", FieldBranchID: "keep_pressing"}))
	if err != nil {
		t.Fatalf("ChooseBranch() error = %v", err)
	}
	if resp.AsMap()[FieldAccepted] != true {
		t.Error("expected branch choice to be accepted")
	}
	if stateOf(t, resp)["branchId"] != "keep_pressing" {
		t.Errorf("branchId = %v, expected keep_pressing", stateOf(t, resp)["branchId"])
	}

	resp, err = svc.Purchase(ctx, request(t, map[string]interface{}{FieldPlayerID: "player-1", FieldUpgradeID: "charm"}))
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if resp.AsMap()[FieldAccepted] != false {
		t.Error("expected charm purchase to be refused without echoes")
	}

	resp, err = svc.GrantModifier(ctx, request(t, map[string]interface{}{
		FieldPlayerID:   "player-1",
		FieldKind:       "overclock",
		FieldLabel:      "Overclock",
		FieldDurationMs: 30000,
	}))
	if err != nil {
		t.Fatalf("GrantModifier() error = %v", err)
	}
	modifiers, _ := stateOf(t, resp)["activeModifiers"].([]interface{})
	found := false
	for _, m := range modifiers {
		if m.(map[string]interface{})["kind"] == "overclock" {
			found = true
		}
	}
	if !found {
		t.Errorf("activeModifiers = %v, expected overclock", modifiers)
	}

	resp, err = svc.SetPreferences(ctx, request(t, map[string]interface{}{FieldPlayerID: "player-1", FieldReducedIntensity: true}))
	if err != nil {
		t.Fatalf("SetPreferences() error = %v", err)
	}
	if resp.AsMap()[FieldReducedIntensity] != true {
		t.Errorf("reduced_intensity = %v, expected true", resp.AsMap()[FieldReducedIntensity])
	}

	resp, err = svc.Reset(ctx, request(t, player))
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	st := stateOf(t, resp)
	if st["clickCount"] != float64(0) {
		t.Errorf("clickCount after reset = %v, expected 0", st["clickCount"])
	}
	if st["seed"] != float64(1) {
		t.Errorf("seed after reset = %v, expected 1", st["seed"])
	}
}

func TestSessionService_OverGRPC(t *testing.T) {
	svc, _ := setupTestService(t)

	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	RegisterSessionServiceServer(server, svc)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer conn.Close()

	client := NewSessionServiceClient(conn)
	ctx := context.Background()

	resp, err := client.Call(ctx, "Press", request(t, map[string]interface{}{FieldPlayerID: "player-1"}))
	if err != nil {
		t.Fatalf("Press over gRPC error = %v", err)
	}
	if stateOf(t, resp)["clickCount"] != float64(1) {
		t.Errorf("clickCount = %v, expected 1", stateOf(t, resp)["clickCount"])
	}

	_, err = client.Call(ctx, "Press", request(t, map[string]interface{}{}))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, expected %v", status.Code(err), codes.InvalidArgument)
	}
}
