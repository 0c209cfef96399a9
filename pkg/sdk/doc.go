// Package salesgate embeds the sales query gateway in a Go program.
//
// The client talks to Elasticsearch or Redis (with the query engine) directly,
// without the HTTP layer:
//
//	client, _ := salesgate.New(ctx, salesgate.WithElasticsearch("http://localhost:9200"))
//	defer client.Close()
//
//	outcome := client.Seed(ctx) // "seeded" or "already_initialized"
//	sales, _ := client.Sales(ctx)
//	stats, _ := client.Stats(ctx)
//	fmt.Println(stats.TotalSales, stats.ByCategory[0].Name)
package salesgate
