// Command seed walks the whole API with generated data: it logs in as the
// bootstrap superuser, creates a few users, a chat group with members,
// some messages and reactions on them. Useful for demos and manual testing
// against a running server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var baseURL = "http://localhost:8080/api/v1"

func main() {
	gofakeit.Seed(time.Now().UnixNano())
	if v := os.Getenv("SEED_BASE_URL"); v != "" {
		baseURL = v
	}

	adminUser := envDef("ADMIN_USERNAME", "dev")
	adminPass := envDef("ADMIN_PASSWORD", "dev")
	defaultPass := envDef("DEFAULT_USER_PASS", "P@ssw0rd")

	// 1. Login as the bootstrap superuser.
	adminTok := login(adminUser, adminPass)
	if adminTok == "" {
		log.Fatal("could not obtain admin token, aborting seeding process")
	}

	// 2. Create a handful of users and log them in.
	usernames := make([]string, 0, 3)
	tokens := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		name := gofakeit.Username()
		createUser(adminTok, name)
		usernames = append(usernames, name)
		tokens = append(tokens, login(name, defaultPass))
	}

	// 3. First user creates a group and adds the others.
	groupID := createGroup(tokens[0], gofakeit.HackerNoun()+"-chat")
	addMembers(tokens[0], groupID, usernames[1:])

	// 4. Everyone posts a message.
	var lastMsg uint
	for _, tok := range tokens {
		lastMsg = postMessage(tok, groupID, gofakeit.HackerPhrase())
	}

	// 5. React to the last message, then replace one reaction.
	react(tokens[0], lastMsg, "like")
	react(tokens[1], lastMsg, "heart")
	react(tokens[1], lastMsg, "laugh") // supersedes the heart
	listReactions(adminTok, lastMsg)

	// 6. Read back the last hour of messages.
	listMessages(tokens[0], groupID)

	log.Println("seeding done")
}

func envDef(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func login(username, password string) string {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	post("", "/login", map[string]string{"username": username, "password": password}, &out)
	log.Printf("logged in as %s", username)
	return out.AccessToken
}

func createUser(token, username string) {
	post(token, "/users", map[string]any{
		"username":   username,
		"first_name": gofakeit.FirstName(),
		"last_name":  gofakeit.LastName(),
		"email":      gofakeit.Email(),
	}, nil)
	log.Printf("created user %s", username)
}

func createGroup(token, name string) uint {
	var out struct {
		ID uint `json:"id"`
	}
	post(token, "/chatgroups", map[string]string{"name": name}, &out)
	log.Printf("created group %q (id=%d)", name, out.ID)
	return out.ID
}

func addMembers(token string, groupID uint, members []string) {
	post(token, fmt.Sprintf("/chatgroups/%d/members", groupID), map[string]any{"members": members}, nil)
	log.Printf("added members %v to group %d", members, groupID)
}

func postMessage(token string, groupID uint, text string) uint {
	var out struct {
		ID uint `json:"id"`
	}
	post(token, "/messages", map[string]any{"group": groupID, "text": text}, &out)
	log.Printf("posted message %d in group %d", out.ID, groupID)
	return out.ID
}

func react(token string, messageID uint, status string) {
	post(token, fmt.Sprintf("/messages/%d/status", messageID), map[string]string{"status": status}, nil)
	log.Printf("reacted %q to message %d", status, messageID)
}

func listReactions(token string, messageID uint) {
	body := get(token, fmt.Sprintf("/messages/%d/status", messageID))
	log.Printf("reactions on message %d: %s", messageID, body)
}

func listMessages(token string, groupID uint) {
	body := get(token, fmt.Sprintf("/chatgroups/%d/messages?from=1", groupID))
	log.Printf("messages in group %d: %s", groupID, body)
}

func post(token, path string, payload any, out any) {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal %s: %v", path, err)
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(b))
	if err != nil {
		log.Fatalf("request %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		log.Fatalf("POST %s: unexpected status %d", path, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("decode %s: %v", path, err)
		}
	}
}

func get(token, path string) string {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		log.Fatalf("request %s: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(res.Body)
	return buf.String()
}
