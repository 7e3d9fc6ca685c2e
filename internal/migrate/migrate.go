package migrate

import (
	"github.com/Rishi-jha/group-chat-app/internal/group"
	"github.com/Rishi-jha/group-chat-app/internal/message"
	"github.com/Rishi-jha/group-chat-app/internal/reaction"
	"github.com/Rishi-jha/group-chat-app/internal/shared/db"
	"github.com/Rishi-jha/group-chat-app/internal/user"
)

func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&user.User{},
		&group.ChatGroup{}, &group.Member{},
		&message.Message{},
		&reaction.Reaction{},
	)
}
