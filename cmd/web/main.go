// @title           HireFlow API
// @version         1.0
// @description     Multi-tenant recruiting backend: candidate pipeline, AI interview scoring, human verdicts.
// @contact.name    HireFlow
// @contact.email   support@hireflow.dev
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "hireflow_backend/internal/app"

func main() {
	app.Run()
}
