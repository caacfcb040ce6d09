package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	graphql "github.com/shyptr/gqlexec"
)

type Droid struct {
	ID   string
	Name string
}

var droids = []*Droid{
	{ID: "2000", Name: "C-3PO"},
	{ID: "2001", Name: "R2-D2"},
}

var droidData = make(map[string]*Droid)

func init() {
	for _, d := range droids {
		droidData[d.ID] = d
	}
}

func main() {
	builder := graphql.NewSchema()
	builder.Object(Droid{}, graphql.Description("An autonomous mechanical character in the Star Wars universe"))

	builder.Query().FieldFunc("droid", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		id := args.(map[string]interface{})["id"].(string)
		if d := droidData[id]; d != nil {
			return d, nil
		}
		return nil, errors.New("this is not the droid you are looking for")
	}, graphql.Input("id", ""), graphql.Output(&Droid{}, graphql.Nonnull()))

	schema := builder.MustBuild()

	http.Handle("/", graphql.GraphiQLHandler())
	http.Handle("/query", graphql.HTTPHandler(schema))
	log.Fatal(http.ListenAndServe(":8080", nil))
}
