package main

import (
	"context"
	"log"
	"net/http"

	graphql "github.com/shyptr/gqlexec"
)

type Identity int

const (
	Student Identity = iota
	Teacher
)

type Person struct {
	Name     string
	Identity Identity
}

var db = []*Person{
	{"john", Student},
	{"mark", Student},
	{"lisa", Teacher},
}

func registerPerson(schema *graphql.SchemaBuilder) {
	person := schema.Object(Person{}, graphql.Description("each person has an identity, student or teacher"))
	person.FieldFunc("age", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		switch source.(Person).Name {
		case "john":
			return 15, nil
		case "mark":
			return 17, nil
		case "lisa":
			return 30, nil
		default:
			return 0, nil
		}
	}, graphql.Description("field which does not exist in struct, named age, return int"), graphql.Output(int(0)))
}

func registerEnum(schema *graphql.SchemaBuilder) {
	schema.Enum(Identity(0), map[string]Identity{
		"student": Student,
		"teacher": Teacher,
	}, graphql.Description("identity enum"))
}

func registerOperations(schema *graphql.SchemaBuilder) {
	query := schema.Query()
	query.FieldFunc("all", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		return db, nil
	}, graphql.Description("get all person from db"), graphql.Output([]*Person{}))

	query.FieldFunc("queryByName", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		name := args.(map[string]interface{})["name"].(string)
		var persons []*Person
		for _, p := range db {
			if p.Name == name {
				persons = append(persons, p)
			}
		}
		return persons, nil
	}, graphql.Description("get person from db by name"),
		graphql.Input("name", ""), graphql.Output([]*Person{}))

	query.FieldFunc("queryByIdentity", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		identity := args.(map[string]interface{})["identity"].(Identity)
		var persons []*Person
		for _, p := range db {
			if p.Identity == identity {
				persons = append(persons, p)
			}
		}
		return persons, nil
	}, graphql.Description("get person from db by identity"),
		graphql.Input("identity", Identity(0)), graphql.Output([]*Person{}))

	mutation := schema.Mutation()
	mutation.FieldFunc("add", func(ctx context.Context, source, args interface{}) (interface{}, error) {
		a := args.(map[string]interface{})
		db = append(db, &Person{Name: a["name"].(string), Identity: a["identity"].(Identity)})
		return true, nil
	}, graphql.Description("add a person into db"),
		graphql.Input("name", ""), graphql.Input("identity", Identity(0)), graphql.Output(true))
}

func main() {
	builder := graphql.NewSchema()
	registerEnum(builder)
	registerPerson(builder)
	registerOperations(builder)

	schema := builder.MustBuild()

	http.Handle("/", graphql.GraphiQLHandler())
	http.Handle("/query", graphql.HTTPHandler(schema))
	log.Fatal(http.ListenAndServe(":3000", nil))
}
