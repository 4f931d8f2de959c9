package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.email == "" || !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.email)
}

// Root runs the REPL until exit or end of input.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to gophauth CLI (type 'help' for commands)\n")

	for {
		a.printf("gauth %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				a.printf("Available commands: whoami, refresh, passwd [id], get <id>, rename <id>, role <id> <role>, lock <id>, unlock <id>, delete <id>, logout, exit\n")
			} else {
				a.printf("Available commands: register, login, exit\n")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "whoami":
			a.whoAmI(ctx)
		case "refresh":
			a.refresh(ctx)
		case "logout":
			a.logout(ctx)
		case "passwd":
			a.changePassword(ctx, args)
		case "get":
			a.withID(args, "get <id>", func(id string) { a.getUser(ctx, id) })
		case "rename":
			a.withID(args, "rename <id>", func(id string) { a.rename(ctx, id) })
		case "role":
			if len(args) != 2 {
				a.printf("Usage: role <id> <role>\n")
				continue
			}
			a.setRole(ctx, args[0], args[1])
		case "lock":
			a.withID(args, "lock <id>", func(id string) { a.setLocked(ctx, id, true) })
		case "unlock":
			a.withID(args, "unlock <id>", func(id string) { a.setLocked(ctx, id, false) })
		case "delete":
			a.withID(args, "delete <id>", func(id string) { a.deleteUser(ctx, id) })
		case "exit", "quit":
			a.printf("Bye!\n")
			return
		default:
			a.printf("Unknown command: %s\n", cmd)
		}
	}
}

func (a *App) withID(args []string, usage string, fn func(id string)) {
	if len(args) != 1 {
		a.printf("Usage: %s\n", usage)
		return
	}
	fn(args[0])
}
