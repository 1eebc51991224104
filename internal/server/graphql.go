package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"signalgen-go/internal/signal"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// handleGraphQL builds the schema once and returns the POST handler for it.
func (s *Server) handleGraphQL() gin.HandlerFunc {
	schema, err := s.buildSchema()
	if err != nil {
		s.log.Fatal().Err(err).Msg("graphql schema construction failed")
	}

	return func(c *gin.Context) {
		var req graphqlRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid graphql request"})
			return
		}
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
		})
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) buildSchema() (graphql.Schema, error) {
	sampleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Sample",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(signal.Sample).ID, nil
				},
			},
			"timestamp": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(signal.Sample).Ts.Format(time.RFC3339), nil
				},
			},
			"value": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(signal.Sample).Value, nil
				},
			},
			"status": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(signal.Sample).Status), nil
				},
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"signals": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ids := s.gen.Signals()
					known := make(map[string]struct{}, len(ids))
					for _, id := range ids {
						known[id] = struct{}{}
					}
					for _, id := range s.store.Signals() {
						if _, ok := known[id]; !ok {
							ids = append(ids, id)
						}
					}
					return ids, nil
				},
			},
			"signal": &graphql.Field{
				Type: sampleType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					sample, ok := s.store.Latest(id)
					if !ok {
						return nil, nil
					}
					return sample, nil
				},
			},
			"history": &graphql.Field{
				Type: graphql.NewList(sampleType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"start": &graphql.ArgumentConfig{Type: graphql.String},
					"end":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					startRaw, _ := p.Args["start"].(string)
					endRaw, _ := p.Args["end"].(string)
					start, end, err := parseRange(startRaw, endRaw)
					if err != nil {
						return nil, err
					}
					samples := s.store.Range(id, start, end)
					if len(samples) == 0 {
						samples = s.gen.Historical(id, start, end)
					}
					return samples, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
