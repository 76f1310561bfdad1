package main

import (
	"context"
	"time"

	"github.com/danielmsk/accord/internal/app"
)

// @title           Accord API
// @version         1.0
// @description     Accord provides account registration, credential verification and profile APIs.
// @termsOfService  https://accord.dev/terms
// @contact.name    Contact Support
// @contact.url     https://accord.dev/contact
// @contact.email   support@accord.dev
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @server          https://localhost:8080
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
