package mcp

import (
	"context"

	"github.com/ganot/rosterdesk/internal/catalog"
	"github.com/ganot/rosterdesk/internal/roster"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools wires every tool onto the server.
func registerTools(server *sdkmcp.Server, services Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "session_status",
		Description: "Get the current authentication state and a roster overview",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct{}) (*sdkmcp.CallToolResult, SessionStatusResult, error) {
		snap := services.Session.Snapshot()
		return nil, SessionStatusResult{
			Authenticated: snap.Authenticated(),
			User:          snap.User,
			Loading:       snap.Loading,
			LastError:     snap.LastError,
			Stats:         services.Roster.Stats(),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sign_up",
		Description: "Create a new account and sign in",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args CredentialsArgs) (*sdkmcp.CallToolResult, SessionStatusResult, error) {
		if err := services.Session.SignUp(ctx, args.Email, args.Password); err != nil {
			return nil, SessionStatusResult{}, MapError(err)
		}
		snap := services.Session.Snapshot()
		return nil, SessionStatusResult{
			Authenticated: snap.Authenticated(),
			User:          snap.User,
			Stats:         services.Roster.Stats(),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sign_in",
		Description: "Sign in with email and password",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args CredentialsArgs) (*sdkmcp.CallToolResult, SignInResult, error) {
		user, err := services.Session.SignIn(ctx, args.Email, args.Password)
		if err != nil {
			return nil, SignInResult{}, MapError(err)
		}
		return nil, SignInResult{User: user}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sign_out",
		Description: "Sign out of the current session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct{}) (*sdkmcp.CallToolResult, SignOutResult, error) {
		if err := services.Session.SignOut(ctx); err != nil {
			return nil, SignOutResult{}, MapError(err)
		}
		return nil, SignOutResult{SignedOut: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_student",
		Description: "Add a student to the roster (requires sign-in)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args AddStudentArgs) (*sdkmcp.CallToolResult, AddStudentResult, error) {
		if !services.Session.Snapshot().Authenticated() {
			return nil, AddStudentResult{}, MapError(ErrSignInRequired)
		}
		student, err := services.Roster.Add(roster.AddRequest{
			Name:   args.Name,
			Email:  args.Email,
			Grade:  args.Grade,
			Course: args.Course,
		})
		if err != nil {
			return nil, AddStudentResult{}, MapError(err)
		}
		return nil, AddStudentResult{Student: student}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_students",
		Description: "List roster students, optionally filtered by search term and course",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args ListStudentsArgs) (*sdkmcp.CallToolResult, ListStudentsResult, error) {
		students := services.Roster.Filter(args.Search, args.Course)
		return nil, ListStudentsResult{
			Students: students,
			Courses:  services.Roster.Courses(),
			Total:    len(services.Roster.List()),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_student",
		Description: "Get one student by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args StudentIDArgs) (*sdkmcp.CallToolResult, StudentResult, error) {
		student, err := services.Roster.Get(args.ID)
		if err != nil {
			return nil, StudentResult{}, MapError(err)
		}
		return nil, StudentResult{Student: student}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_student",
		Description: "Select a student for the detail view; empty id clears the selection",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args SelectStudentArgs) (*sdkmcp.CallToolResult, SelectStudentResult, error) {
		if args.ID == "" {
			services.Roster.ClearSelection()
		} else {
			services.Roster.Select(args.ID)
		}
		return nil, selectionResult(services), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "selected_student",
		Description: "Get the currently selected student, if any",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args struct{}) (*sdkmcp.CallToolResult, SelectStudentResult, error) {
		return nil, selectionResult(services), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_courses",
		Description: "List catalog courses, optionally filtered by search term",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args ListCoursesArgs) (*sdkmcp.CallToolResult, ListCoursesResult, error) {
		return nil, ListCoursesResult{Courses: services.Catalog.Search(args.Search)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_course",
		Description: "Add a course to the catalog (requires sign-in)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args AddCourseArgs) (*sdkmcp.CallToolResult, AddCourseResult, error) {
		if !services.Session.Snapshot().Authenticated() {
			return nil, AddCourseResult{}, MapError(ErrSignInRequired)
		}
		course, err := services.Catalog.Add(catalog.AddRequest{
			Name:        args.Name,
			Description: args.Description,
			Level:       catalog.Level(args.Level),
		})
		if err != nil {
			return nil, AddCourseResult{}, MapError(err)
		}
		return nil, AddCourseResult{Course: course}, nil
	})
}

func selectionResult(services Services) SelectStudentResult {
	if student, ok := services.Roster.Selected(); ok {
		return SelectStudentResult{Selected: &student}
	}
	return SelectStudentResult{}
}
