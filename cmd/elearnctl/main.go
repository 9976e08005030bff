package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/elearn-app/elearn/internal/lock"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/session"
	"github.com/elearn-app/elearn/internal/tui/client"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides $ELEARN_SESSION and config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	cachedFlag := flag.Bool("cached", false, "list commands return the last synced list without refreshing")
	flag.Parse()

	sessionName, source := session.ResolveWithSource(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Sessions are read from disk; no daemon needed.
	if args[0] == "sessions" {
		cmdSessions(*jsonFlag, sessionName, source)
		return
	}

	socketPath := session.SocketPath(sessionName)
	c, err := client.New(socketPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot connect to daemon for session %q: %v\n", sessionName, err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out := output{json: *jsonFlag}
	list := &rpc.ListRequest{Cached: *cachedFlag}

	switch args[0] {
	case "status":
		cmdStatus(ctx, c, out)
	case "signin":
		need(args, 2, "signin <access-token> [refresh-token] [email]")
		req := &rpc.SignInRequest{AccessToken: args[1]}
		if len(args) > 2 {
			req.RefreshToken = args[2]
		}
		if len(args) > 3 {
			req.Email = args[3]
		}
		resp, err := c.Session.SignIn(ctx, req)
		check(err)
		out.print(resp, func() {
			fmt.Printf("State: %s\n", resp.State)
			if resp.User != nil {
				fmt.Printf("Signed in as %s <%s>\n", resp.User.Name, resp.User.Email)
			}
			if resp.ErrorKind != "" {
				fmt.Printf("Could not reach the backend (%s); tokens kept.\n", resp.ErrorKind)
			}
		})
	case "signout":
		resp, err := c.Session.SignOut(ctx, &rpc.Empty{})
		check(err)
		out.print(resp, func() { fmt.Printf("State: %s\n", resp.State) })
	case "courses":
		cmdCourses(ctx, c, list, args, out)
	case "chats":
		resp, err := c.Chat.ListChats(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("chats", resp.ListMeta)
			for _, ch := range resp.Chats {
				unread := ""
				if ch.Unread > 0 {
					unread = fmt.Sprintf(" [%d]", ch.Unread)
				}
				fmt.Printf("%-24s %-10s %s%s\n", ch.With, ch.TimeText, oneLine(ch.LastMessage, 50), unread)
			}
			fmt.Printf("Unread: %d\n", resp.TotalUnread)
		})
	case "chat-with":
		need(args, 2, "chat-with <mentor-id>")
		resp, err := c.Chat.StartChat(ctx, &rpc.StartChatRequest{MentorID: args[1]})
		check(err)
		out.print(resp, func() { fmt.Printf("Chat: %s\n", resp.ChatID) })
	case "notifications":
		resp, err := c.Notification.ListNotifications(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("notifications", resp.ListMeta)
			for _, n := range resp.Notifications {
				mark := " "
				if !n.Read {
					mark = "*"
				}
				fmt.Printf("%s %-24s %-12s %s\n", mark, n.ID, n.TimeText, n.Title)
			}
			fmt.Printf("Unread: %d\n", resp.Unread)
		})
	case "read":
		need(args, 2, "read <notification-id>")
		resp, err := c.Notification.MarkRead(ctx, &rpc.MarkReadRequest{ID: args[1]})
		check(err)
		out.print(resp, func() {
			if resp.Acknowledged {
				fmt.Println("Marked as read.")
			} else {
				fmt.Printf("Marked as read locally; backend did not confirm (%s).\n", resp.ErrorKind)
			}
		})
	case "mentors":
		resp, err := c.Content.ListMentors(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("mentors", resp.ListMeta)
			for _, m := range resp.Mentors {
				fmt.Printf("%-24s %-24s %s\n", m.ID, m.Name, m.Expertise)
			}
		})
	case "faq":
		resp, err := c.Content.GetFAQ(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("faq", resp.ListMeta)
			for _, f := range resp.Items {
				fmt.Printf("Q: %s\nA: %s\n\n", f.Question, f.Answer)
			}
		})
	case "me":
		resp, err := c.Profile.GetProfile(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("profile", resp.ListMeta)
			if resp.User == nil {
				fmt.Println("Not signed in.")
				return
			}
			fmt.Printf("Name:    %s\nEmail:   %s\nRole:    %s\nCourses: %d\n",
				resp.User.Name, resp.User.Email, resp.User.Role, resp.User.Courses)
		})
	case "rename":
		need(args, 2, "rename <name>")
		resp, err := c.Profile.UpdateName(ctx, &rpc.UpdateNameRequest{Name: strings.Join(args[1:], " ")})
		check(err)
		out.print(resp, func() {
			if resp.User != nil {
				fmt.Printf("Name: %s\n", resp.User.Name)
			}
		})
	case "wishlist":
		resp, err := c.Profile.ListWishlist(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("wishlist", resp.ListMeta)
			for _, w := range resp.Items {
				fmt.Printf("%-24s %-32s %8.2f\n", w.ID, w.Name, w.Price)
			}
		})
	case "cart":
		resp, err := c.Profile.GetCart(ctx, list)
		check(err)
		out.print(resp, func() {
			warnStale("cart", resp.ListMeta)
			if resp.FromSnapshot {
				fmt.Printf("(saved copy from %s)\n", resp.SnapshotAt.Local().Format(time.DateTime))
			}
			for _, it := range resp.Items {
				fmt.Printf("%-32s %8.2f\n", it.Name, it.Price)
			}
			fmt.Printf("%-32s %8.2f\n", "Total", resp.Total)
		})
	case "answer":
		need(args, 5, "answer <course-id> <content-id> <question-id> <answer>")
		_, err := c.Course.AddAnswer(ctx, &rpc.AddAnswerRequest{
			CourseID:   args[1],
			ContentID:  args[2],
			QuestionID: args[3],
			Answer:     strings.Join(args[4:], " "),
		})
		check(err)
		out.print(&rpc.Empty{}, func() { fmt.Println("Answer submitted.") })
	case "certificate":
		need(args, 2, "certificate <course-id>")
		resp, err := c.Course.GetCertificate(ctx, &rpc.GetCertificateRequest{CourseID: args[1]})
		check(err)
		out.print(resp, func() { fmt.Println(resp.URL) })
	case "watch":
		cmdWatch(c, args, out)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: elearnctl [--session <name>] [--json] [--cached] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  status                          Show session status")
	fmt.Fprintln(os.Stderr, "  signin <access> [refresh] [email]  Store a token pair")
	fmt.Fprintln(os.Stderr, "  signout                         Forget the signed-in user")
	fmt.Fprintln(os.Stderr, "  courses [all|complete|incomplete]  List courses")
	fmt.Fprintln(os.Stderr, "  chats                           List conversations")
	fmt.Fprintln(os.Stderr, "  chat-with <mentor-id>           Open a chat with a mentor")
	fmt.Fprintln(os.Stderr, "  notifications                   List notifications")
	fmt.Fprintln(os.Stderr, "  read <id>                       Mark a notification read")
	fmt.Fprintln(os.Stderr, "  mentors                         List mentors")
	fmt.Fprintln(os.Stderr, "  faq                             Show the FAQ")
	fmt.Fprintln(os.Stderr, "  me                              Show the profile")
	fmt.Fprintln(os.Stderr, "  rename <name>                   Change the display name")
	fmt.Fprintln(os.Stderr, "  wishlist                        List the wishlist")
	fmt.Fprintln(os.Stderr, "  cart                            Show the cart")
	fmt.Fprintln(os.Stderr, "  answer <course> <content> <question> <text>  Answer a question")
	fmt.Fprintln(os.Stderr, "  certificate <course-id>         Print the certificate URL")
	fmt.Fprintln(os.Stderr, "  watch [namespace]               Stream daemon events")
	fmt.Fprintln(os.Stderr, "  sessions                        List known sessions")
}

func cmdStatus(ctx context.Context, c *client.Client, out output) {
	resp, err := c.Session.GetStatus(ctx, &rpc.Empty{})
	check(err)
	out.print(resp, func() {
		fmt.Printf("Session: %s\n", resp.Session)
		fmt.Printf("Status:  %s\n", resp.State)
		fmt.Printf("Backend: %s\n", resp.APIBaseURL)
		fmt.Printf("Uptime:  %dms\n", resp.UptimeMs)
		if resp.User != nil {
			fmt.Printf("User:    %s <%s>\n", resp.User.Name, resp.User.Email)
		} else if resp.Account != "" {
			fmt.Printf("Account: %s\n", resp.Account)
		}
		for _, l := range resp.Lists {
			line := fmt.Sprintf("  %-14s %d items", l.List, l.LastCount)
			if !l.LastSuccessAt.IsZero() {
				line += ", synced " + l.LastSuccessAt.Local().Format(time.DateTime)
			}
			if l.LastErrorKind != "" && l.LastFailureAt.After(l.LastSuccessAt) {
				line += ", failing: " + l.LastErrorKind
			}
			fmt.Println(line)
		}
	})
}

func cmdCourses(ctx context.Context, c *client.Client, list *rpc.ListRequest, args []string, out output) {
	resp, err := c.Course.ListCourses(ctx, list)
	check(err)

	tab := "all"
	if len(args) > 1 {
		tab = args[1]
	}
	var courses []rpc.CourseView
	switch tab {
	case "all":
		courses = resp.All
	case "complete":
		courses = resp.Complete
	case "incomplete":
		courses = resp.Incomplete
	default:
		fmt.Fprintln(os.Stderr, "usage: elearnctl courses [all|complete|incomplete]")
		os.Exit(1)
	}
	if out.json {
		outputJSON(courses)
		return
	}
	warnStale("courses", resp.ListMeta)
	warnStale("progress", resp.Progress)
	for _, cv := range courses {
		progress := "-"
		if cv.Started {
			progress = fmt.Sprintf("%3.0f%%", cv.Progress*100)
		}
		fmt.Printf("%-24s %-40s %5s\n", cv.ID, oneLine(cv.Name, 40), progress)
	}
}

func cmdWatch(c *client.Client, args []string, out output) {
	ns := ""
	if len(args) > 1 {
		ns = args[1]
	}
	stream, err := c.Session.WatchEvents(context.Background(), &rpc.WatchEventsRequest{Namespace: ns})
	check(err)
	for {
		evt, err := stream.Recv()
		check(err)
		if out.json {
			outputJSON(evt)
			continue
		}
		fmt.Printf("%s %-28s", evt.Timestamp.Local().Format(time.TimeOnly), evt.Kind)
		switch {
		case evt.To != "":
			fmt.Printf(" %s -> %s", evt.From, evt.To)
		case evt.ErrorKind != "":
			fmt.Printf(" %s: %s", evt.List, evt.ErrorKind)
		case evt.List != "":
			fmt.Printf(" %s (%d)", evt.List, evt.Count)
		case evt.ItemID != "":
			fmt.Printf(" %s", evt.ItemID)
		}
		fmt.Println()
	}
}

type sessionInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	// Active marks the session this invocation resolved to, and Source
	// where that name came from.
	Active bool           `json:"active,omitempty"`
	Source session.Source `json:"source,omitempty"`
}

func cmdSessions(jsonOut bool, active string, source session.Source) {
	names, err := session.List()
	check(err)
	infos := make([]sessionInfo, 0, len(names))
	for _, name := range names {
		info := sessionInfo{Name: name, Path: session.Dir(name)}
		if name == active {
			info.Active, info.Source = true, source
		}
		if h, err := lock.ReadHolder(info.Path); err == nil {
			if _, err := os.Stat(session.SocketPath(name)); err == nil {
				info.Running = true
				info.PID = h.PID
			}
		}
		infos = append(infos, info)
	}
	if jsonOut {
		outputJSON(infos)
		return
	}
	if len(infos) == 0 {
		fmt.Println("No sessions found.")
		return
	}
	for _, s := range infos {
		running := "stopped"
		if s.Running {
			running = fmt.Sprintf("running, pid %d", s.PID)
		}
		mark := " "
		if s.Active {
			mark = "*"
			running += ", selected by " + string(s.Source)
		}
		fmt.Printf("%s %-20s %s (%s)\n", mark, s.Name, s.Path, running)
	}
}

type output struct {
	json bool
}

func (o output) print(v any, text func()) {
	if o.json {
		outputJSON(v)
		return
	}
	text()
}

func warnStale(list string, m rpc.ListMeta) {
	if m.Stale() {
		fmt.Fprintf(os.Stderr, "warning: %s not refreshed (%s): %s\n", list, m.ErrorKind, m.Error)
	}
}

func need(args []string, n int, usage string) {
	if len(args) < n {
		fmt.Fprintf(os.Stderr, "usage: elearnctl %s\n", usage)
		os.Exit(1)
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
