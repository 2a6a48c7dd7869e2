package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
)

// Registers a demo account against a running server and logs in with it,
// printing the session token. Useful when poking the API by hand.
func main() {
	base := flag.String("base", "http://localhost:3000", "server base URL")
	username := flag.String("username", "demo", "username")
	email := flag.String("email", "demo@example.com", "email")
	password := flag.String("password", "demo123", "password")
	flag.Parse()

	status, body := post(*base+"/api/register", map[string]string{
		"username":        *username,
		"email":           *email,
		"password":        *password,
		"confirmPassword": *password,
	})
	log.Printf("register: status=%d body=%s", status, body)

	status, body = post(*base+"/api/login", map[string]string{
		"email":    *email,
		"password": *password,
	})
	if status != http.StatusOK {
		log.Fatalf("login failed: status=%d body=%s", status, body)
	}

	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		log.Fatalf("decode login response: %v", err)
	}
	log.Printf("token=%s", res.Token)
}

func post(url string, payload map[string]string) (int, []byte) {
	data, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}
