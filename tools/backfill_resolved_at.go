package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/VineethSendilraj/COPilot/services"
	"google.golang.org/api/iterator"
)

// Stamps resolved_at on incidents that were resolved before the field
// existed. Uses updated_at when present, created_at otherwise.
func main() {
	creds := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if creds == "" {
		creds = "./firebase-service-account.json"
	}

	svc, err := services.NewFirebaseService(creds)
	if err != nil {
		log.Fatalf("failed to init firebase: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	iter := svc.Firestore.Collection("incidents").Documents(ctx)

	var updated, scanned int
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Fatalf("failed iterating incidents: %v", err)
		}
		scanned++

		data := doc.Data()

		resolved, _ := data["is_resolved"].(bool)
		if !resolved {
			continue
		}

		// already stamped, skip
		if _, ok := data["resolved_at"].(time.Time); ok {
			continue
		}

		var stamp time.Time
		if t, ok := data["updated_at"].(time.Time); ok {
			stamp = t
		} else if t, ok := data["created_at"].(time.Time); ok {
			stamp = t
		} else {
			log.Printf("doc %s has no usable timestamp, skipping", doc.Ref.ID)
			continue
		}

		_, err = svc.Firestore.Collection("incidents").Doc(doc.Ref.ID).Update(ctx, []firestore.Update{
			{Path: "resolved_at", Value: stamp},
		})
		if err != nil {
			log.Printf("failed to update doc %s: %v", doc.Ref.ID, err)
			continue
		}
		updated++
		log.Printf("updated doc %s with resolved_at=%s", doc.Ref.ID, stamp.Format(time.RFC3339))
	}

	log.Printf("scanned=%d updated=%d", scanned, updated)
}
