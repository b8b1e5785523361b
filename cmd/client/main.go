// Terminal client for the support chat: login, send messages, and manage
// saved conversations against a running server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"sereno-backend/internal/conversation"
	"sereno-backend/internal/identity"
	"sereno-backend/internal/model"
	"sereno-backend/internal/relay"
	"sereno-backend/internal/storage"
	"sereno-backend/pkg/logger"
)

func main() {
	var (
		serverURL string
		dataDir   string
	)
	flag.StringVar(&serverURL, "server", "http://localhost:3000", "chat server base URL")
	flag.StringVar(&dataDir, "data", "./clientdata", "local state directory")
	flag.Parse()

	if err := logger.Init("warn", "text"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	store := storage.NewDiskStore(dataDir)
	if err := store.Init(); err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	mgr := conversation.NewManager(store)
	client := relay.NewHTTPClient(serverURL, 60*time.Second)
	r := relay.New(mgr, client)

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 64*1024), 64*1024)

	user, ok := mgr.CurrentUser()
	if !ok {
		user = login(in)
		mgr.Login(user)
	}
	fmt.Printf("Welcome back, %s %s\n", user.Avatar, user.Username)
	printHistory(mgr.Active().Messages)
	fmt.Println(`Type a message, or /help for commands.`)

	for prompt(); in.Scan(); prompt() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := command(line, mgr, client, in); quit {
				return
			}
			continue
		}

		send(r, client, line)
	}
}

func prompt() {
	fmt.Print("> ")
}

func login(in *bufio.Scanner) model.User {
	for {
		fmt.Print("Username: ")
		if !in.Scan() {
			os.Exit(0)
		}
		username := strings.TrimSpace(in.Text())

		fmt.Print("Password: ")
		if !in.Scan() {
			os.Exit(0)
		}
		password := strings.TrimSpace(in.Text())

		user, err := identity.Authenticate(username, password)
		if err != nil {
			fmt.Println("Invalid username or password, try again.")
			continue
		}
		return user
	}
}

func send(r *relay.Relay, client *relay.HTTPClient, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	result, err := r.Send(ctx, text)
	if result.CrisisFlagged {
		printCrisisBanner(client)
	}
	if err != nil {
		switch err {
		case relay.ErrEmptyMessage:
			fmt.Println("Please type a message first.")
		case relay.ErrMessageTooLong:
			fmt.Printf("Messages are limited to %d characters.\n", relay.MaxMessageLen)
		case relay.ErrStaleReply:
			// Conversation changed mid-flight; nothing to show.
		default:
			fmt.Println("Failed to send message. Please try again.")
		}
		return
	}

	fmt.Printf("\nbot: %s\n", result.Reply.Content)
}

func command(line string, mgr *conversation.Manager, client *relay.HTTPClient, in *bufio.Scanner) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		fmt.Println(`/new            start a new chat (current one is saved)
/sessions       list saved conversations
/open <n>       resume conversation n from the list
/delete <n>     delete conversation n from the list
/history        show the current conversation
/resources      show support resources
/logout         save, log out and exit
/quit           save and exit`)

	case "/new":
		mgr.NewChat()
		fmt.Println("Started a new chat.")

	case "/sessions":
		sessions := mgr.Sessions()
		if len(sessions) == 0 {
			fmt.Println("No saved conversations yet.")
			return false
		}
		for i, s := range sessions {
			fmt.Printf("%2d. %s  (%d messages, %s)\n",
				i+1, s.Title, len(s.Messages), s.LastMessageAt.Format("Jan 2 15:04"))
		}

	case "/open", "/delete":
		if len(fields) < 2 {
			fmt.Printf("Usage: %s <n>\n", fields[0])
			return false
		}
		sessions := mgr.Sessions()
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(sessions) {
			fmt.Println("No such conversation.")
			return false
		}
		target := sessions[n-1]
		if fields[0] == "/delete" {
			mgr.Delete(target.ID)
			fmt.Printf("Deleted %q.\n", target.Title)
			return false
		}
		if err := mgr.Select(target.ID); err != nil {
			fmt.Println("No such conversation.")
			return false
		}
		fmt.Printf("Resumed %q.\n", target.Title)
		printHistory(mgr.Active().Messages)

	case "/history":
		printHistory(mgr.Active().Messages)

	case "/resources":
		printCrisisBanner(client)

	case "/logout":
		mgr.Logout()
		fmt.Println("Logged out.")
		return true

	case "/quit":
		mgr.SaveCurrent()
		return true

	default:
		fmt.Println("Unknown command; /help lists what's available.")
	}
	return false
}

func printHistory(messages []model.Message) {
	for _, msg := range messages {
		fmt.Printf("[%s] %s: %s\n",
			msg.Timestamp.Format("15:04"), msg.Sender, msg.Content)
	}
}

func printCrisisBanner(client *relay.HTTPClient) {
	fmt.Println("\n--- You are not alone. Immediate support is available. ---")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dir, err := client.Resources(ctx)
	if err != nil {
		// Keep the essentials visible even when the server is unreachable.
		fmt.Println("National Suicide Prevention Lifeline: 1-800-273-8255 (24/7)")
		fmt.Println("Crisis Text Line: Text HOME to 741741 (24/7)")
		return
	}

	for _, contact := range dir.EmergencyContacts {
		fmt.Printf("%s: %s (%s)\n", contact.Name, contact.Phone, contact.Available)
	}
	for _, org := range dir.Organizations {
		fmt.Printf("%s: %s (%s)\n", org.Name, org.Helpline, org.Website)
	}
}
