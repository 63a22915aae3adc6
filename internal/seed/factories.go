// Package seed populates a development database with realistic data.
package seed

import (
	"fmt"
	"strings"
	"time"

	"uplift/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// DevPassword is the password every seeded account gets.
const DevPassword = "uplift-dev1"

var positiveTemplates = []string{
	"Just finished a great book about %s, highly recommend it!",
	"Beautiful morning for a walk, the %s looked amazing today.",
	"So proud of the team, we shipped the %s feature ahead of schedule!",
	"Tried a new %s recipe tonight and it turned out wonderful.",
	"Grateful for good friends and good %s this weekend.",
}

var replyTemplates = []string{
	"Love this, thanks for sharing!",
	"This made my day, congrats!",
	"What a great idea, I'm going to try it too.",
	"Couldn't agree more, well said.",
	"Wonderful news, keep it up!",
}

// randomUser builds a user with a faked identity and the dev password.
func randomUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DevPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	return &models.User{
		FirstName: first,
		LastName:  last,
		Email:     strings.ToLower(fmt.Sprintf("%s.%s.%d@example.com", first, last, gofakeit.Number(1, 9999))),
		Password:  string(hashed),
	}, nil
}

// randomSubmission builds a positively-toned submission for the given author.
// Seed text is kept upbeat so it clears the moderation gate if replayed
// through the service layer.
func randomSubmission(userID uint, age time.Duration) *models.Submission {
	template := positiveTemplates[gofakeit.Number(0, len(positiveTemplates)-1)]
	return &models.Submission{
		UserID:    &userID,
		Text:      fmt.Sprintf(template, gofakeit.NounConcrete()),
		CreatedAt: time.Now().Add(-age),
	}
}

func randomReply(submissionID, userID uint) *models.Reply {
	return &models.Reply{
		SubmissionID: submissionID,
		UserID:       &userID,
		Text:         replyTemplates[gofakeit.Number(0, len(replyTemplates)-1)],
	}
}

func randomReaction(submissionID, userID uint) *models.Reaction {
	return &models.Reaction{
		SubmissionID: submissionID,
		UserID:       userID,
		ReactionID:   gofakeit.Number(models.ReactionLike, models.ReactionWow),
	}
}
